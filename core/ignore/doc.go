// Package ignore decides which generated files must never be touched.
//
// Users drop ".generator-ignore" files anywhere under the output root. Each file holds
// one glob per line, evaluated relative to the directory that contains it. Blank lines
// and lines starting with "#" are skipped.
//
// # Matching
//
// For a candidate path the matcher walks from the path's parent directory up to the
// output root, inclusive. At every level the path is made relative to that directory and
// tested against that directory's patterns; levels are independent and the first match
// wins. Patterns use doublestar syntax: "*" stays within one path segment, "**" spans any
// number of segments (including zero) and "?" matches a single character.
//
//	root/.generator-ignore            app.yaml
//	                                  **/*.php
//	root/level1/.generator-ignore     level2/*/kept.txt
//
// Ignore files are read once per directory and cached for the lifetime of the Matcher.
// An unreadable ignore file is logged and treated as empty.
//
// # Usage
//
//	m := ignore.New(outputDir, logger)
//	skip, err := m.ShouldExclude(filepath.Join(outputDir, "app.yaml"))
package ignore
