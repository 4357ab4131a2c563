package descriptor_test

import (
	"context"
	"testing"
	"testing/fstest"

	"model-generator/core/descriptor"
	"model-generator/core/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
permission: rw-r--r--
templates:
  - name: entity
    factoryExpression: model.tables
    pathExpression: "src/${self.name}.go"
    templateName: entity.go.tpl
  - name: readme
    pathExpression: README.md
    template: "# {{ .model.name }}"
  - name: script
    pathExpression: run.sh
    templateName: run.sh
    copy: true
    permission: rwxr-xr-x
`

func TestParse(t *testing.T) {
	d, err := descriptor.Parse([]byte(baseYAML))
	require.NoError(t, err)
	require.NoError(t, d.Validate())

	assert.Equal(t, "rw-r--r--", d.Permission)
	require.Len(t, d.Templates, 3)
	assert.Equal(t, "model.tables", d.Templates[0].FactoryExpression)
	assert.True(t, d.Templates[2].Copy)

	_, err = descriptor.Parse([]byte("templates:\n  - name: x\n    unknownField: 1\n"))
	assert.Error(t, err)

	empty, err := descriptor.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.Templates)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		tmpl descriptor.Template
		ok   bool
	}{
		{"valid inline", descriptor.Template{Name: "a", PathExpression: "a", Template: "x"}, true},
		{"missing name", descriptor.Template{PathExpression: "a", Template: "x"}, false},
		{"missing path", descriptor.Template{Name: "a", Template: "x"}, false},
		{"no source", descriptor.Template{Name: "a", PathExpression: "a"}, false},
		{"both sources", descriptor.Template{Name: "a", PathExpression: "a", Template: "x", TemplateName: "y"}, false},
		{"copy inline", descriptor.Template{Name: "a", PathExpression: "a", Template: "x", Copy: true}, false},
		{"bad permission", descriptor.Template{Name: "a", PathExpression: "a", Template: "x", Permission: "rwz"}, false},
		{"excluded skips checks", descriptor.Template{Name: "a", Exclude: true}, true},
		{"context entry", descriptor.Template{Name: "a", PathExpression: "a", Template: "x",
			TemplateContext: []descriptor.ContextExpression{{Name: "n"}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &descriptor.Descriptor{Templates: []descriptor.Template{tt.tmpl}}
			err := d.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}

	dup := &descriptor.Descriptor{Templates: []descriptor.Template{
		{Name: "a", PathExpression: "a", Template: "x"},
		{Name: "a", PathExpression: "b", Template: "y"},
	}}
	assert.Error(t, dup.Validate())
}

func TestLoadChain(t *testing.T) {
	base := fstest.MapFS{"project.yaml": {Data: []byte(baseYAML)}}
	project := fstest.MapFS{"project.yaml": {Data: []byte(`
templates:
  - name: readme
    pathExpression: docs/README.md
    template: "custom"
  - name: script
    exclude: true
  - name: extra
    pathExpression: extra.txt
    template: "extra"
`)}}
	empty := fstest.MapFS{}

	chain, err := resolver.NewChain([]resolver.Root{
		resolver.NewFSRoot("mem://project", project),
		resolver.NewFSRoot("mem://empty", empty),
		resolver.NewFSRoot("mem://base", base),
	}, "", nil)
	require.NoError(t, err)

	d, err := descriptor.LoadChain(context.Background(), chain, "project", nil)
	require.NoError(t, err)

	require.Len(t, d.Templates, 4)
	assert.Equal(t, "rw-r--r--", d.Permission)
	assert.Equal(t, "docs/README.md", d.Templates[1].PathExpression)
	assert.True(t, d.Templates[2].Exclude)
	assert.Equal(t, "extra", d.Templates[3].Name)

	var names []string
	for _, tmpl := range d.Active() {
		names = append(names, tmpl.Name)
	}
	assert.Equal(t, []string{"entity", "readme", "extra"}, names)
}

func TestLoadChainMissing(t *testing.T) {
	chain, err := resolver.NewChain([]resolver.Root{resolver.NewFSRoot("mem://a", fstest.MapFS{})}, "", nil)
	require.NoError(t, err)

	_, err = descriptor.LoadChain(context.Background(), chain, "project", nil)
	assert.ErrorIs(t, err, resolver.ErrNotFound)
}
