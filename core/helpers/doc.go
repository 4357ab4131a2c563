// Package helpers holds the named helper functions available to templates and expressions.
//
// Helpers are grouped into modules and registered explicitly; nothing is discovered at
// runtime. A run enumerates the modules it wants active (configuration key
// "generator.helpers"), and the registry builds two views of them:
//
//   - FuncMap: a text/template function map for the renderer
//   - Functions: cty functions for the expression evaluator; only helpers with a
//     func(string) string or func(string) bool signature are exposed there
//
// Built-in modules:
//
//	strings  firstToUpperCase firstToLowerCase lowerCase upperCase camelCaseToSnakeCase
//	         decorateWithAsterisks cleanup quote trim replace hasPrefix hasSuffix contains
//	case     pascalCase camelCase snakeCase
//	util     notEmpty empty isTrue dict default toString toInt join split
//
// # Usage
//
//	reg := helpers.Default()
//	funcs := reg.FuncMap("strings", "case")
package helpers
