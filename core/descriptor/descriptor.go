package descriptor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"model-generator/core/reconcile"
	"model-generator/core/resolver"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Extension is appended to the descriptor name to find its file.
const Extension = ".yaml"

// Descriptor is the list of templates of a generation run.
type Descriptor struct {
	// Permission is the default permission of generated files.
	Permission string `yaml:"permission,omitempty"`
	// Templates are applied in order.
	Templates []Template `yaml:"templates"`
}

// Template describes how one kind of artifact is generated.
type Template struct {
	Name string `yaml:"name"`

	// FactoryExpression selects the elements the template is applied to. Each
	// element is bound to "self". Empty means a single element, the model.
	FactoryExpression string `yaml:"factoryExpression,omitempty"`
	// PathExpression is an HCL template producing the artifact path.
	PathExpression string `yaml:"pathExpression"`
	// ConditionExpression excludes the artifact when false. Empty means true.
	ConditionExpression string `yaml:"conditionExpression,omitempty"`

	// TemplateName is resolved through the template root chain.
	TemplateName string `yaml:"templateName,omitempty"`
	// Template is an inline template used when TemplateName is empty.
	Template string `yaml:"template,omitempty"`
	// Copy writes the resolved template verbatim instead of rendering it.
	Copy bool `yaml:"copy,omitempty"`

	// ActorTypeBased runs the template once per actor.
	ActorTypeBased bool `yaml:"actorTypeBased,omitempty"`
	// Exclude switches off a template inherited from a less specific root.
	Exclude bool `yaml:"exclude,omitempty"`
	// Permission overrides the descriptor default.
	Permission string `yaml:"permission,omitempty"`

	TemplateContext []ContextExpression `yaml:"templateContext,omitempty"`
}

// ContextExpression binds the value of Expression to Name in the template data.
type ContextExpression struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression"`
}

// Parse decodes a descriptor. Unknown fields are rejected.
func Parse(data []byte) (*Descriptor, error) {
	var d Descriptor
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse descriptor: %w", err)
	}
	return &d, nil
}

// Validate checks templates for missing or conflicting fields.
func (d *Descriptor) Validate() error {
	var errs []error
	if d.Permission != "" {
		if _, err := reconcile.ParsePermissions(d.Permission); err != nil {
			errs = append(errs, err)
		}
	}

	seen := make(map[string]struct{}, len(d.Templates))
	for i, t := range d.Templates {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("template #%d has no name", i))
			continue
		}
		if _, dup := seen[t.Name]; dup {
			errs = append(errs, fmt.Errorf("template %q is defined twice", t.Name))
		}
		seen[t.Name] = struct{}{}
		if t.Exclude {
			continue
		}
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("template %q: %w", t.Name, err))
		}
	}
	return errors.Join(errs...)
}

func (t Template) validate() error {
	switch {
	case t.PathExpression == "":
		return errors.New("pathExpression is required")
	case t.TemplateName == "" && t.Template == "":
		return errors.New("one of templateName or template is required")
	case t.TemplateName != "" && t.Template != "":
		return errors.New("templateName and template are mutually exclusive")
	case t.Copy && t.TemplateName == "":
		return errors.New("copy requires templateName")
	}
	if t.Permission != "" {
		if _, err := reconcile.ParsePermissions(t.Permission); err != nil {
			return err
		}
	}
	for _, c := range t.TemplateContext {
		if c.Name == "" || c.Expression == "" {
			return errors.New("templateContext entries need a name and an expression")
		}
	}
	return nil
}

// Override replaces templates with the same name and appends new ones.
func (d *Descriptor) Override(templates []Template) {
	index := make(map[string]int, len(d.Templates))
	for i, t := range d.Templates {
		index[t.Name] = i
	}
	for _, t := range templates {
		if i, ok := index[t.Name]; ok {
			d.Templates[i] = t
			continue
		}
		index[t.Name] = len(d.Templates)
		d.Templates = append(d.Templates, t)
	}
}

// Active returns the templates that are not excluded.
func (d *Descriptor) Active() []Template {
	out := make([]Template, 0, len(d.Templates))
	for _, t := range d.Templates {
		if !t.Exclude {
			out = append(out, t)
		}
	}
	return out
}

// LoadChain reads name+".yaml" from every root of chain and merges them, the
// least specific root first. Roots without the file are skipped.
func LoadChain(ctx context.Context, chain *resolver.Chain, name string, logger *zap.Logger) (*Descriptor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var links []*resolver.Chain
	for link := chain; link != nil; link = link.Parent() {
		links = append(links, link)
	}

	file := name + Extension
	var merged *Descriptor
	for i := len(links) - 1; i >= 0; i-- {
		root := links[i].Root()
		data, err := root.Open(ctx, file)
		if err != nil {
			logger.Debug("No descriptor at template root", zap.String("root", root.URI()), zap.String("file", file))
			continue
		}
		d, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", root.URI(), file, err)
		}
		if merged == nil {
			merged = d
		} else {
			if d.Permission != "" {
				merged.Permission = d.Permission
			}
			merged.Override(d.Templates)
		}
		logger.Debug("Loaded descriptor", zap.String("root", root.URI()), zap.Int("templates", len(d.Templates)))
	}

	if merged == nil {
		return nil, &resolver.NotFoundError{Location: file}
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("descriptor %s: %w", name, err)
	}
	return merged, nil
}
