package expr

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Context holds the variables visible to an expression. It is immutable: With
// returns a copy, so a parent context can be shared between goroutines.
type Context struct {
	vars map[string]cty.Value
}

// NewContext returns an empty context.
func NewContext() Context {
	return Context{}
}

// With returns a copy of c with name bound to v.
func (c Context) With(name string, v cty.Value) Context {
	vars := make(map[string]cty.Value, len(c.vars)+1)
	for k, val := range c.vars {
		vars[k] = val
	}
	vars[name] = v
	return Context{vars: vars}
}

// WithGo binds a native Go value after converting it with ToValue.
func (c Context) WithGo(name string, v any) (Context, error) {
	val, err := ToValue(v)
	if err != nil {
		return c, err
	}
	return c.With(name, val), nil
}

// Lookup returns the value bound to name.
func (c Context) Lookup(name string) (cty.Value, bool) {
	v, ok := c.vars[name]
	return v, ok
}

// Names returns the bound variable names, sorted.
func (c Context) Names() []string {
	names := make([]string, 0, len(c.vars))
	for k := range c.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Native returns the context as Go values, the shape handed to templates.
func (c Context) Native() (map[string]any, error) {
	out := make(map[string]any, len(c.vars))
	for k, v := range c.vars {
		native, err := FromValue(v)
		if err != nil {
			return nil, err
		}
		out[k] = native
	}
	return out, nil
}

func (c Context) variables() map[string]cty.Value {
	vars := make(map[string]cty.Value, len(c.vars))
	for k, v := range c.vars {
		vars[k] = v
	}
	return vars
}
