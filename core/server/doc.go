// Package server holds the HTTP server configuration.
//
// The serve command reads it to pick the listen port, the API key protecting the
// generation endpoints and whether mutating endpoints are exposed at all.
package server
