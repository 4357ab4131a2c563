package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ErrExpression is returned when an expression cannot be parsed or evaluated.
var ErrExpression = errors.New("expression error")

// Error describes a failed expression.
type Error struct {
	Source string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("expression %q: %v", e.Source, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrExpression }

// Evaluator evaluates HCL expressions against a Context.
type Evaluator struct {
	funcs map[string]function.Function
}

// NewEvaluator returns an evaluator with the standard function library plus extra.
// Extra functions shadow standard ones with the same name.
func NewEvaluator(extra map[string]function.Function) *Evaluator {
	funcs := StandardFunctions()
	for name, fn := range extra {
		funcs[name] = fn
	}
	return &Evaluator{funcs: funcs}
}

// StandardFunctions returns the cty standard library under HCL-style names.
func StandardFunctions() map[string]function.Function {
	return map[string]function.Function{
		"upper":        stdlib.UpperFunc,
		"lower":        stdlib.LowerFunc,
		"title":        stdlib.TitleFunc,
		"trim":         stdlib.TrimFunc,
		"trimspace":    stdlib.TrimSpaceFunc,
		"trimprefix":   stdlib.TrimPrefixFunc,
		"trimsuffix":   stdlib.TrimSuffixFunc,
		"substr":       stdlib.SubstrFunc,
		"replace":      stdlib.ReplaceFunc,
		"regex":        stdlib.RegexFunc,
		"regexreplace": stdlib.RegexReplaceFunc,
		"split":        stdlib.SplitFunc,
		"join":         stdlib.JoinFunc,
		"format":       stdlib.FormatFunc,
		"formatlist":   stdlib.FormatListFunc,
		"length":       stdlib.LengthFunc,
		"concat":       stdlib.ConcatFunc,
		"contains":     stdlib.ContainsFunc,
		"coalesce":     stdlib.CoalesceFunc,
		"compact":      stdlib.CompactFunc,
		"distinct":     stdlib.DistinctFunc,
		"flatten":      stdlib.FlattenFunc,
		"element":      stdlib.ElementFunc,
		"index":        stdlib.IndexFunc,
		"slice":        stdlib.SliceFunc,
		"sort":         stdlib.SortFunc,
		"reverse":      stdlib.ReverseFunc,
		"keys":         stdlib.KeysFunc,
		"values":       stdlib.ValuesFunc,
		"lookup":       stdlib.LookupFunc,
		"merge":        stdlib.MergeFunc,
		"zipmap":       stdlib.ZipmapFunc,
		"chunklist":    stdlib.ChunklistFunc,
		"range":        stdlib.RangeFunc,
		"min":          stdlib.MinFunc,
		"max":          stdlib.MaxFunc,
		"int":          stdlib.IntFunc,
		"jsonencode":   stdlib.JSONEncodeFunc,
		"jsondecode":   stdlib.JSONDecodeFunc,
	}
}

var startPos = hcl.Pos{Line: 1, Column: 1, Byte: 0}

func (e *Evaluator) evalContext(c Context) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: c.variables(),
		Functions: e.funcs,
	}
}

// Eval evaluates source as an HCL expression.
func (e *Evaluator) Eval(c Context, source string) (cty.Value, error) {
	parsed, diags := hclsyntax.ParseExpression([]byte(source), "expression", startPos)
	if diags.HasErrors() {
		return cty.NilVal, &Error{Source: source, Err: diags}
	}
	return e.value(c, source, parsed)
}

// Template evaluates source as an HCL template: literal text with ${...}
// interpolations. The result is always a string.
func (e *Evaluator) Template(c Context, source string) (string, error) {
	parsed, diags := hclsyntax.ParseTemplate([]byte(source), "template", startPos)
	if diags.HasErrors() {
		return "", &Error{Source: source, Err: diags}
	}
	v, err := e.value(c, source, parsed)
	if err != nil {
		return "", err
	}
	return asString(source, v)
}

func (e *Evaluator) value(c Context, source string, parsed hclsyntax.Expression) (cty.Value, error) {
	v, diags := parsed.Value(e.evalContext(c))
	if diags.HasErrors() {
		return cty.NilVal, &Error{Source: source, Err: diags}
	}
	if !v.IsWhollyKnown() {
		return cty.NilVal, &Error{Source: source, Err: errors.New("result is not known")}
	}
	return v, nil
}

// String evaluates source and converts the result to a string.
func (e *Evaluator) String(c Context, source string) (string, error) {
	v, err := e.Eval(c, source)
	if err != nil {
		return "", err
	}
	return asString(source, v)
}

// Bool evaluates source as a condition. Null is false; strings "true" and
// "false" are accepted.
func (e *Evaluator) Bool(c Context, source string) (bool, error) {
	if strings.TrimSpace(source) == "" {
		return true, nil
	}
	v, err := e.Eval(c, source)
	if err != nil {
		return false, err
	}
	if v.IsNull() {
		return false, nil
	}
	b, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, &Error{Source: source, Err: fmt.Errorf("not a boolean: %w", err)}
	}
	if b.IsNull() {
		return false, nil
	}
	return b.True(), nil
}

// Each evaluates a factory expression into the elements a template is applied to.
// A list, set or tuple yields its elements; null yields none; any other value
// is a single element.
func (e *Evaluator) Each(c Context, source string) ([]cty.Value, error) {
	v, err := e.Eval(c, source)
	if err != nil {
		return nil, err
	}
	return Elements(v), nil
}

// Elements spreads v the way Each does.
func Elements(v cty.Value) []cty.Value {
	if v.IsNull() {
		return nil
	}
	ty := v.Type()
	if !(ty.IsListType() || ty.IsSetType() || ty.IsTupleType()) {
		return []cty.Value{v}
	}
	out := make([]cty.Value, 0, v.LengthInt())
	it := v.ElementIterator()
	for it.Next() {
		_, el := it.Element()
		out = append(out, el)
	}
	return out
}

func asString(source string, v cty.Value) (string, error) {
	if v.IsNull() {
		return "", &Error{Source: source, Err: errors.New("result is null")}
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", &Error{Source: source, Err: fmt.Errorf("not a string: %w", err)}
	}
	return s.AsString(), nil
}
