package generation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"model-generator/core/descriptor"
	"model-generator/core/expr"
	"model-generator/core/generate"
	"model-generator/core/helpers"
	"model-generator/core/logger"
	"model-generator/core/manifest"
	"model-generator/core/model"
	"model-generator/core/reconcile"
	"model-generator/core/render"
	"model-generator/core/resolver"
	"model-generator/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the optional collaborators of a Service.
type Deps struct {
	// Storage serves s3:// template roots.
	Storage storage.Client
	// Bucket is used by s3:///prefix roots that name no bucket.
	Bucket string
	// DB is the database model source.
	DB *gorm.DB
	// Tables limits database introspection.
	Tables []string
	Logger *zap.Logger
}

var errInvalidActor = errors.New("invalid actor name")

// Service runs generation for one configured project.
type Service struct {
	cfg      generate.Config
	deps     Deps
	registry *helpers.Registry
	logger   *zap.Logger

	// serializes runs that write to the target directory
	mu sync.Mutex
}

// NewService creates a generation service. Storage is only needed for s3://
// template roots and DB only for the database model source.
func NewService(cfg generate.Config, deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:      cfg,
		deps:     deps,
		registry: helpers.Default(),
		logger:   logger,
	}
}

// Config returns the generator configuration of the service.
func (s *Service) Config() generate.Config {
	return s.cfg
}

// Project holds the collaborators assembled for a run.
type Project struct {
	Chain      *resolver.Chain
	Descriptor *descriptor.Descriptor
	Renderer   *render.Renderer
	Evaluator  *expr.Evaluator
	Model      model.Model
}

// Run is the outcome of one generation run.
type Run struct {
	ID              string                    `json:"run_id"`
	Reconciliations []generate.Reconciliation `json:"reconciliations"`
}

// LoadModel reads the model from the configured source.
func (s *Service) LoadModel() (model.Model, error) {
	switch s.cfg.ModelSource {
	case "", "file":
		return model.LoadFile(s.cfg.ModelFile)
	case "database":
		if s.deps.DB == nil {
			return nil, errors.New("model source is database but no database is connected")
		}
		return model.FromDatabase(s.deps.DB, s.deps.Tables)
	default:
		return nil, fmt.Errorf("unknown model source %q", s.cfg.ModelSource)
	}
}

// Evaluator returns an expression evaluator with the configured helper modules.
func (s *Service) Evaluator() (*expr.Evaluator, error) {
	fns, err := s.registry.Functions(s.cfg.Helpers...)
	if err != nil {
		return nil, err
	}
	return expr.NewEvaluator(fns), nil
}

// Load assembles the template chain, descriptor, renderer, evaluator and model.
func (s *Service) Load(ctx context.Context, log *zap.Logger) (*Project, error) {
	roots, err := resolver.ParseRoots(s.cfg.TemplateRoots, s.deps.Storage, s.deps.Bucket)
	if err != nil {
		return nil, err
	}
	chain, err := resolver.NewChain(roots, s.cfg.TemplateSuffix, log)
	if err != nil {
		return nil, err
	}
	if err := chain.Check(ctx); err != nil {
		return nil, err
	}

	d, err := descriptor.LoadChain(ctx, chain, s.cfg.Descriptor, log)
	if err != nil {
		return nil, err
	}

	funcs, err := s.registry.FuncMap(s.cfg.Helpers...)
	if err != nil {
		return nil, err
	}
	ev, err := s.Evaluator()
	if err != nil {
		return nil, err
	}

	m, err := s.LoadModel()
	if err != nil {
		return nil, err
	}

	log.Debug("Project loaded",
		zap.Strings("template_roots", chain.URIs()),
		zap.Int("templates", len(d.Active())),
	)
	return &Project{
		Chain:      chain,
		Descriptor: d,
		Renderer:   render.NewRenderer(chain, funcs, log),
		Evaluator:  ev,
		Model:      m,
	}, nil
}

func (s *Service) generate(ctx context.Context, log *zap.Logger) (*Project, *generate.Result, error) {
	p, err := s.Load(ctx, log)
	if err != nil {
		return nil, nil, err
	}
	result, err := generate.Generate(ctx, generate.Params{
		Descriptor: p.Descriptor,
		Renderer:   p.Renderer,
		Evaluator:  p.Evaluator,
		Model:      p.Model,
		Workers:    s.cfg.Workers,
		Logger:     log,
	})
	if err != nil {
		return nil, nil, err
	}
	return p, result, nil
}

func (s *Service) target(m model.Model) generate.Target {
	t := generate.Target{
		Dir:      s.cfg.TargetDir,
		ActorDir: s.cfg.ActorDir,
		Model:    m,
	}
	if len(s.cfg.Actors) > 0 {
		accepted := slices.Clone(s.cfg.Actors)
		t.Accept = func(actor string) bool { return slices.Contains(accepted, actor) }
	}
	return t
}

func (s *Service) options(log *zap.Logger) reconcile.Options {
	return reconcile.Options{
		ValidateChecksum: s.cfg.ValidateChecksum,
		TwoPhase:         s.cfg.TwoPhase,
		DryRun:           s.cfg.DryRun,
		Workers:          s.cfg.Workers,
		Logger:           log,
	}
}

// Plan generates and computes the reconcile plans without touching the target directory.
func (s *Service) Plan(ctx context.Context) (*Run, error) {
	log, id := logger.WithRunID(s.logger)
	p, result, err := s.generate(ctx, log)
	if err != nil {
		return nil, err
	}
	plans, err := generate.PlanDirectory(ctx, p.Evaluator, result, s.target(p.Model), s.options(log))
	if err != nil {
		return nil, err
	}
	return &Run{ID: id, Reconciliations: plans}, nil
}

// Apply generates and reconciles into the target directory. On failure the
// partitions reconciled so far are returned with the error.
func (s *Service) Apply(ctx context.Context) (*Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, id := logger.WithRunID(s.logger)
	log.Info("Generation run started", zap.String("target_dir", s.cfg.TargetDir))

	p, result, err := s.generate(ctx, log)
	if err != nil {
		return nil, err
	}
	done, err := generate.ToDirectory(ctx, p.Evaluator, result, s.target(p.Model), s.options(log))
	run := &Run{ID: id, Reconciliations: done}
	if err != nil {
		log.Warn("Generation run failed", zap.Error(err))
		return run, err
	}
	log.Info("Generation run finished", zap.Int("partitions", len(done)))
	return run, nil
}

// Manifest reads the manifest of the main partition, or of actor when not empty.
func (s *Service) Manifest(actor string) (manifest.Manifest, error) {
	if strings.ContainsAny(actor, `/\`) || actor == "." || actor == ".." {
		return nil, fmt.Errorf("%w %q", errInvalidActor, actor)
	}
	ev, err := s.Evaluator()
	if err != nil {
		return nil, err
	}

	var m model.Model
	if actor != "" {
		// actor objects may feed the actor directory template
		if m, err = s.LoadModel(); err != nil {
			return nil, err
		}
	}
	dir, err := s.target(m).DirFor(ev, actor)
	if err != nil {
		return nil, err
	}
	return manifest.Read(dir, manifest.NameFor(actor))
}

// Checksum rewrites every manifest from the files on disk.
func (s *Service) Checksum(ctx context.Context) (map[string]manifest.Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log, _ := logger.WithRunID(s.logger)
	m, err := s.LoadModel()
	if err != nil {
		return nil, err
	}
	ev, err := s.Evaluator()
	if err != nil {
		return nil, err
	}
	return generate.RecalculateDirectory(ctx, ev, model.Actors(m), s.target(m), s.options(log))
}
