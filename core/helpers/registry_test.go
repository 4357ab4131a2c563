package helpers

import (
	"bytes"
	"testing"
	"text/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{"strings", "case", "util"}, reg.Names())

	funcs, err := reg.FuncMap()
	require.NoError(t, err)
	for _, name := range []string{"firstToUpperCase", "pascalCase", "notEmpty", "dict"} {
		assert.Contains(t, funcs, name)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(Module{Name: "x"}))
	assert.Error(t, reg.Register(Module{Name: "x"}))
	assert.Error(t, reg.Register(Module{}))
}

func TestFuncMapActiveModules(t *testing.T) {
	reg := Default()

	funcs, err := reg.FuncMap("case")
	require.NoError(t, err)
	assert.Contains(t, funcs, "pascalCase")
	assert.NotContains(t, funcs, "firstToUpperCase")

	_, err = reg.FuncMap("missing")
	assert.Error(t, err)
}

func TestFuncMapInTemplate(t *testing.T) {
	funcs, err := Default().FuncMap()
	require.NoError(t, err)

	tmpl := template.Must(template.New("t").Funcs(funcs).Parse(
		`{{ firstToUpperCase .name }}|{{ camelCaseToSnakeCase "fooBar" }}|{{ if notEmpty .empty }}x{{ else }}-{{ end }}|{{ default "none" .missing }}`))

	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, map[string]any{"name": "order", "empty": "  "}))
	assert.Equal(t, "Order|FOO_BAR|-|none", buf.String())
}

func TestFunctions(t *testing.T) {
	fns, err := Default().Functions()
	require.NoError(t, err)

	upper, ok := fns["pascalCase"]
	require.True(t, ok)
	got, err := upper.Call([]cty.Value{cty.StringVal("order_line")})
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("OrderLine"), got)

	notEmpty, ok := fns["notEmpty"]
	require.True(t, ok)
	got, err = notEmpty.Call([]cty.Value{cty.NullVal(cty.String)})
	require.NoError(t, err)
	assert.Equal(t, cty.False, got)

	// helpers with other signatures are template only
	assert.NotContains(t, fns, "dict")
	assert.NotContains(t, fns, "replace")
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, "a\n * b", DecorateWithAsterisks("a\nb"))
	assert.Equal(t, "abc", Cleanup(" a\tb\nc "))
	assert.True(t, IsTrue("True"))
	assert.False(t, IsTrue("1"))
	assert.True(t, Empty(" "))
	assert.Equal(t, "a,1", Join(",", []any{"a", float64(1)}))

	d, err := Dict("a", 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, d)
	_, err = Dict("a")
	assert.Error(t, err)
}

func TestDefaultValue(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want any
	}{
		{"Nil", nil, "fallback"},
		{"Blank", "  ", "fallback"},
		{"EmptySlice", []any{}, "fallback"},
		{"Value", "set", "set"},
		{"Zero", 0, 0},
		{"False", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultValue("fallback", tt.val))
		})
	}
}
