// Package expr evaluates the HCL expressions found in generator descriptors.
//
// Descriptors carry four kinds of expression:
//
//   - factory expressions select the elements a template is applied to (self.tables)
//   - condition expressions decide whether an artifact is produced (self.enabled)
//   - path expressions are HCL templates producing the output path ("src/${self.name}.go")
//   - template context expressions add named values visible to the template
//
// Evaluation always receives an explicit Context; there is no ambient or
// goroutine-local state, so one Evaluator is safe for concurrent use.
//
// Model data decoded from YAML, JSON or a database schema is bridged into cty
// through JSON (ToValue), and results are converted back with FromValue.
package expr
