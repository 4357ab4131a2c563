package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"text/template"

	"model-generator/core/checksum"
	"model-generator/core/resolver"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds nested includes.
const DefaultMaxDepth = 32

// ErrIncludeDepth is returned when includes nest deeper than the renderer allows.
var ErrIncludeDepth = errors.New("include depth exceeded")

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	chain    *resolver.Chain
	funcMap  template.FuncMap
	logger   *zap.Logger
	maxDepth int

	cache map[string]*template.Template
	mu    sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer resolving templates through chain with the given helpers.
func NewRenderer(chain *resolver.Chain, funcs template.FuncMap, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	funcMap := template.FuncMap{}
	for name, fn := range funcs {
		funcMap[name] = fn
	}
	// placeholder so templates referencing include parse; replaced per execution
	funcMap["include"] = func(string, ...any) (string, error) {
		return "", errors.New("include is not bound")
	}
	return &Renderer{
		chain:    chain,
		funcMap:  funcMap,
		logger:   logger,
		maxDepth: DefaultMaxDepth,
		cache:    make(map[string]*template.Template),
	}
}

// Chain returns the resolver chain templates are loaded from.
func (r *Renderer) Chain() *resolver.Chain {
	return r.chain
}

// Render resolves name through the chain and executes it with data.
func (r *Renderer) Render(ctx context.Context, session *resolver.Session, name string, data any) ([]byte, error) {
	if session == nil {
		session = resolver.NewSession()
	}
	return r.render(ctx, session, name, data, 0)
}

// RenderString renders an inline template. name is used for caching and error messages.
func (r *Renderer) RenderString(ctx context.Context, session *resolver.Session, name, text string, data any) ([]byte, error) {
	if session == nil {
		session = resolver.NewSession()
	}
	tmpl, err := r.parse("inline:"+name, []byte(text))
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, session, tmpl, data, 0)
}

func (r *Renderer) render(ctx context.Context, session *resolver.Session, name string, data any, depth int) ([]byte, error) {
	if depth > r.maxDepth {
		return nil, fmt.Errorf("template '%s': %w (%d)", name, ErrIncludeDepth, r.maxDepth)
	}

	src, err := r.chain.ResolveContent(ctx, session, name)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Rendering template", zap.String("name", name), zap.String("location", src.Location), zap.Int("depth", depth))

	tmpl, err := r.parse(src.Location, src.Content)
	if err != nil {
		return nil, err
	}
	return r.execute(ctx, session, tmpl, data, depth)
}

// parse returns the cached template for location and content, parsing it on a miss.
func (r *Renderer) parse(location string, content []byte) (*template.Template, error) {
	cacheKey := location + ":" + checksum.Bytes(content)

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	tmpl, err := template.New(location).Funcs(r.funcMap).Option("missingkey=zero").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", location, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

func (r *Renderer) execute(ctx context.Context, session *resolver.Session, tmpl *template.Template, data any, depth int) ([]byte, error) {
	bound, err := tmpl.Clone()
	if err != nil {
		return nil, fmt.Errorf("failed to clone template '%s': %w", tmpl.Name(), err)
	}
	bound.Funcs(template.FuncMap{
		"include": func(name string, args ...any) (string, error) {
			includeData := data
			if len(args) > 0 {
				includeData = args[0]
			}
			out, err := r.render(ctx, session, name, includeData, depth+1)
			return string(out), err
		},
	})

	var buf bytes.Buffer
	if err := bound.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}
