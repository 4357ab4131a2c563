// Package resolver looks up template sources across an ordered chain of template roots.
//
// A project usually layers several template roots: a project-specific directory first,
// then shared company templates, then the generator's built-in set. The Chain models this
// as a singly linked list, most specific root first. A lookup that misses at one root is
// delegated to the next.
//
// # Overrides
//
// A root can decorate a template instead of replacing it. For "model.go.tpl" the override
// form is "model.go.override.tpl". When a non-empty override exists at the same root it is
// returned instead of the original, and the override may include "model.go.tpl" again to
// wrap the base template. A Session records, per location, which override paths have
// already been tried, so the nested include resolves to the original instead of recursing
// into the override forever.
//
//	chain, _ := resolver.NewChain([]resolver.Root{project, base}, ".tpl", log)
//	session := resolver.NewSession()
//	src, err := chain.ResolveContent(ctx, session, "model.go.tpl")
//
// # Roots
//
//   - FSRoot: any fs.FS; NewDirRoot wraps a local directory ("file://" URIs or plain paths)
//   - StorageRoot: objects under a prefix in an S3 compatible bucket ("s3://bucket/prefix")
package resolver
