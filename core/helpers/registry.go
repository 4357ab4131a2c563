package helpers

import (
	"fmt"
	"sort"
	"text/template"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Module is a named group of helper functions.
type Module struct {
	// Name identifies the module in configuration.
	Name string

	// Funcs maps helper names to Go functions callable from text/template.
	Funcs map[string]any
}

// Registry holds helper modules by name.
type Registry struct {
	modules map[string]Module
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Default returns a registry holding the built-in modules.
func Default() *Registry {
	r := NewRegistry()
	for _, m := range []Module{StringsModule(), CaseModule(), UtilModule()} {
		// built-in module names are unique
		_ = r.Register(m)
	}
	return r
}

// Register adds m. Registering the same module name twice is an error.
func (r *Registry) Register(m Module) error {
	if m.Name == "" {
		return fmt.Errorf("helper module has no name")
	}
	if _, ok := r.modules[m.Name]; ok {
		return fmt.Errorf("helper module %q already registered", m.Name)
	}
	r.modules[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// Names returns registered module names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// resolve returns the modules to activate. No names activates every module.
func (r *Registry) resolve(active []string) ([]Module, error) {
	if len(active) == 0 {
		active = r.order
	}
	modules := make([]Module, 0, len(active))
	for _, name := range active {
		m, ok := r.modules[name]
		if !ok {
			return nil, fmt.Errorf("unknown helper module %q (registered: %v)", name, r.order)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// FuncMap merges the helpers of the active modules. Later modules win on name clashes.
func (r *Registry) FuncMap(active ...string) (template.FuncMap, error) {
	modules, err := r.resolve(active)
	if err != nil {
		return nil, err
	}
	funcs := template.FuncMap{}
	for _, m := range modules {
		for name, fn := range m.Funcs {
			funcs[name] = fn
		}
	}
	return funcs, nil
}

// Functions exposes the string helpers of the active modules as cty functions.
func (r *Registry) Functions(active ...string) (map[string]function.Function, error) {
	funcs, err := r.FuncMap(active...)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]function.Function)
	for _, name := range names {
		switch fn := funcs[name].(type) {
		case func(string) string:
			out[name] = stringFunction(fn)
		case func(string) bool:
			out[name] = predicateFunction(fn)
		}
	}
	return out, nil
}

func stringFunction(fn func(string) string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "str", Type: cty.String}},
		Type:   function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(fn(args[0].AsString())), nil
		},
	})
}

func predicateFunction(fn func(string) bool) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "str", Type: cty.String, AllowNull: true}},
		Type:   function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if args[0].IsNull() {
				return cty.BoolVal(fn("")), nil
			}
			return cty.BoolVal(fn(args[0].AsString())), nil
		},
	})
}
