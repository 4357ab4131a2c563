// Package utils provides the value conversions and identifier helpers shared by the
// template helpers and the expression evaluator.
//
// Model values arrive untyped (decoded YAML, JSON or database rows), so conversions
// are lenient: they never fail and fall back to the zero value.
package utils
