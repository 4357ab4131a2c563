// Package loader registers the HTTP features of the serve command.
//
// A feature bundles a service with its routes. The serve command registers every
// feature with a Manager, and LoadAll mounts the enabled ones on the Fiber app in
// registration order, returning their names for the startup log. A feature whose
// Load fails stops the startup.
package loader
