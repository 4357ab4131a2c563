// Package generation exposes generation runs of the configured project over HTTP
// and to the CLI commands.
//
// The Service assembles a run from configuration: template roots become a
// resolver chain, the descriptor is merged across the roots, the model is read
// from a file or a database, and the result is reconciled into the target
// directory. Runs that write are serialized.
//
// # HTTP Endpoints
//
//   - GET /generation/plan : Plans every partition without touching the disk.
//   - POST /generation/apply : Generates and reconciles (409 when generated files were edited).
//   - GET /generation/manifest : Returns a saved manifest (supports ?actor=name).
//   - POST /generation/checksum : Rewrites manifests from the files on disk.
package generation
