package generate

import (
	"context"
	"errors"
	"runtime"
	"sort"

	"model-generator/core/descriptor"
	"model-generator/core/expr"
	"model-generator/core/model"
	"model-generator/core/reconcile"
	"model-generator/core/render"
	"model-generator/core/resolver"

	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Params are the inputs of a generation run.
type Params struct {
	Descriptor *descriptor.Descriptor
	Renderer   *render.Renderer
	Evaluator  *expr.Evaluator
	Model      model.Model

	// Variables are bound by name next to model, self and actor.
	Variables map[string]any
	// Actors overrides the actors read from the model.
	Actors []string

	Workers int
	Logger  *zap.Logger
}

// Result holds the artifacts of a run.
type Result struct {
	// Generated is the main partition, sorted by path.
	Generated []reconcile.Artifact
	// ByDiscriminator holds the artifacts of actor based templates per actor.
	ByDiscriminator map[string][]reconcile.Artifact
}

// Discriminators returns the actor names present in the result, sorted.
func (r *Result) Discriminators() []string {
	names := make([]string, 0, len(r.ByDiscriminator))
	for name := range r.ByDiscriminator {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type task struct {
	template descriptor.Template
	actor    string
}

// Generate evaluates every active template of the descriptor against the model.
func Generate(ctx context.Context, p Params) (*Result, error) {
	if p.Descriptor == nil || p.Renderer == nil || p.Evaluator == nil {
		return nil, errors.New("generate: descriptor, renderer and evaluator are required")
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	base, err := baseContext(p)
	if err != nil {
		return nil, err
	}

	actors := p.Actors
	if actors == nil {
		actors = model.Actors(p.Model)
	}

	var tasks []task
	for _, t := range p.Descriptor.Active() {
		if !t.ActorTypeBased {
			tasks = append(tasks, task{template: t})
			continue
		}
		for _, actor := range actors {
			tasks = append(tasks, task{template: t, actor: actor})
		}
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([][]reconcile.Artifact, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, tk := range tasks {
		i, tk := i, tk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			arts, err := run(gctx, p, base, tk, log)
			if err != nil {
				return err
			}
			out[i] = arts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{ByDiscriminator: make(map[string][]reconcile.Artifact)}
	for i, tk := range tasks {
		if tk.actor == "" {
			result.Generated = append(result.Generated, out[i]...)
			continue
		}
		result.ByDiscriminator[tk.actor] = append(result.ByDiscriminator[tk.actor], out[i]...)
	}
	sortArtifacts(result.Generated)
	for _, arts := range result.ByDiscriminator {
		sortArtifacts(arts)
	}

	log.Info("Generation finished",
		zap.Int("templates", len(p.Descriptor.Active())),
		zap.Int("generated", len(result.Generated)),
		zap.Int("actors", len(result.ByDiscriminator)),
	)
	return result, nil
}

// sortArtifacts orders by path; the stable sort keeps template order among duplicates.
func sortArtifacts(arts []reconcile.Artifact) {
	sort.SliceStable(arts, func(i, j int) bool { return arts[i].Path < arts[j].Path })
}

func baseContext(p Params) (expr.Context, error) {
	c := expr.NewContext()
	for name, v := range p.Variables {
		var err error
		if c, err = c.WithGo(name, v); err != nil {
			return c, &EvaluationError{Expression: name, Err: err}
		}
	}
	c, err := c.WithGo("model", p.Model)
	if err != nil {
		return c, &EvaluationError{Expression: "model", Err: err}
	}
	return c.With("actor", cty.NullVal(cty.DynamicPseudoType)), nil
}

func run(ctx context.Context, p Params, base expr.Context, tk task, log *zap.Logger) ([]reconcile.Artifact, error) {
	t := tk.template
	fail := func(expression string, err error) error {
		return &EvaluationError{Template: t.Name, Expression: expression, Err: err}
	}

	c := base
	if tk.actor != "" {
		var err error
		if c, err = c.WithGo("actor", model.Actor(p.Model, tk.actor)); err != nil {
			return nil, fail("actor", err)
		}
	}

	var elements []cty.Value
	if t.FactoryExpression == "" {
		m, _ := c.Lookup("model")
		elements = []cty.Value{m}
	} else {
		var err error
		if elements, err = p.Evaluator.Each(c, t.FactoryExpression); err != nil {
			return nil, fail(t.FactoryExpression, err)
		}
	}

	permission := t.Permission
	if permission == "" {
		permission = p.Descriptor.Permission
	}

	arts := make([]reconcile.Artifact, 0, len(elements))
	for _, el := range elements {
		ec := c.With("self", el)
		for _, tc := range t.TemplateContext {
			v, err := p.Evaluator.Eval(ec, tc.Expression)
			if err != nil {
				return nil, fail(tc.Expression, err)
			}
			ec = ec.With(tc.Name, v)
		}

		include, err := p.Evaluator.Bool(ec, t.ConditionExpression)
		if err != nil {
			return nil, fail(t.ConditionExpression, err)
		}

		path, err := p.Evaluator.Template(ec, t.PathExpression)
		if err != nil {
			if !include {
				continue
			}
			return nil, fail(t.PathExpression, err)
		}

		if !include {
			log.Debug("Condition excludes artifact", zap.String("template", t.Name), zap.String("path", path))
			arts = append(arts, reconcile.Artifact{Path: path, Include: false})
			continue
		}

		content, err := contentOf(ctx, p, t, ec)
		if err != nil {
			return nil, fail("", err)
		}
		arts = append(arts, reconcile.Artifact{
			Path:        path,
			Content:     content,
			Permissions: permission,
			Include:     true,
		})
	}
	return arts, nil
}

func contentOf(ctx context.Context, p Params, t descriptor.Template, c expr.Context) ([]byte, error) {
	if t.Copy {
		src, err := p.Renderer.Chain().Resource(ctx, t.TemplateName)
		if err != nil {
			return nil, err
		}
		return src.Content, nil
	}

	data, err := c.Native()
	if err != nil {
		return nil, err
	}

	// each top-level render gets its own session; includes share it
	session := resolver.NewSession()
	if t.TemplateName != "" {
		return p.Renderer.Render(ctx, session, t.TemplateName, data)
	}
	return p.Renderer.RenderString(ctx, session, t.Name, t.Template, data)
}
