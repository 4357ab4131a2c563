// Package render executes text/template sources loaded through the chained resolver.
//
// Each top-level Render call takes a resolver.Session. The "include" template
// function re-enters the resolver with that same session, so an override
// template can include the template it overrides and get the base version
// instead of itself. Parsed templates are cached by resolved location and
// content digest.
package render
