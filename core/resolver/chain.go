package resolver

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultSuffix is the template suffix used when none is configured.
const DefaultSuffix = ".tpl"

const overrideMarker = ".override"

// Source is resolved template content.
type Source struct {
	// Location is the canonical location the content was read from.
	Location string
	// Content is the raw template source.
	Content []byte
}

// Chain is a linked list of template roots, most specific first.
type Chain struct {
	root   Root
	parent *Chain
	suffix string
	logger *zap.Logger
}

// NewChain links roots into a chain. roots[0] is consulted first.
func NewChain(roots []Root, suffix string, logger *zap.Logger) (*Chain, error) {
	if len(roots) == 0 {
		return nil, errors.New("at least one template root is required")
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var chain *Chain
	for i := len(roots) - 1; i >= 0; i-- {
		chain = &Chain{root: roots[i], parent: chain, suffix: suffix, logger: logger}
	}
	return chain, nil
}

// Root returns the root at this link.
func (c *Chain) Root() Root {
	return c.root
}

// Parent returns the next, less specific link, or nil at the end of the chain.
func (c *Chain) Parent() *Chain {
	return c.parent
}

// URIs returns the root URIs, most specific first.
func (c *Chain) URIs() []string {
	var uris []string
	for link := c; link != nil; link = link.parent {
		uris = append(uris, link.root.URI())
	}
	return uris
}

// Suffix returns the template suffix overrides are derived from.
func (c *Chain) Suffix() string {
	return c.suffix
}

// OverrideForm inserts the override marker before the template suffix.
// Locations without the suffix are returned unchanged.
func (c *Chain) OverrideForm(location string) string {
	if !strings.HasSuffix(location, c.suffix) {
		return location
	}
	return strings.TrimSuffix(location, c.suffix) + overrideMarker + c.suffix
}

// IsOverride reports whether location already is an override form.
func (c *Chain) IsOverride(location string) bool {
	return strings.HasSuffix(location, overrideMarker+c.suffix)
}

// Check runs the availability check of every root that has one.
func (c *Chain) Check(ctx context.Context) error {
	for link := c; link != nil; link = link.parent {
		if checker, ok := link.root.(interface{ Check(context.Context) error }); ok {
			if err := checker.Check(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveContent returns the template source for location, preferring a non-empty
// override at each root. Lookups that miss are delegated down the chain; when no root
// has the template a *NotFoundError naming location is returned.
func (c *Chain) ResolveContent(ctx context.Context, session *Session, location string) (*Source, error) {
	if session == nil {
		session = NewSession()
	}
	return c.sourceAt(ctx, session, strings.TrimPrefix(location, "/"), location)
}

func (c *Chain) sourceAt(ctx context.Context, session *Session, loc, original string) (*Source, error) {
	c.logger.Debug("Resolving template", zap.String("root", c.root.URI()), zap.String("location", loc))

	override := c.OverrideForm(loc)
	if override != loc && !c.IsOverride(loc) {
		key := c.root.URI() + "/" + override
		if session.push(loc, key) {
			content, err := c.root.Open(ctx, override)
			if err == nil && len(content) > 0 {
				return c.sourceAtInternal(ctx, session, override, original)
			}
		}
	}

	return c.sourceAtInternal(ctx, session, loc, original)
}

func (c *Chain) sourceAtInternal(ctx context.Context, session *Session, loc, original string) (*Source, error) {
	content, err := c.root.Open(ctx, loc)
	if err == nil {
		return &Source{Location: c.root.URI() + "/" + loc, Content: content}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	c.logger.Debug("Unable to resolve template, trying next root in the chain",
		zap.String("root", c.root.URI()),
		zap.String("location", original),
		zap.Error(err),
	)
	if c.parent != nil {
		return c.parent.sourceAt(ctx, session, loc, original)
	}
	return nil, &NotFoundError{Location: original}
}

// ResolveLocation returns the canonical location of the first root that has location.
func (c *Chain) ResolveLocation(ctx context.Context, location string) (string, error) {
	resolved, err := c.root.Locate(ctx, location)
	if err == nil {
		return resolved, nil
	}

	c.logger.Debug("Unable to locate template, trying next root in the chain",
		zap.String("root", c.root.URI()),
		zap.String("location", location),
	)
	if c.parent != nil {
		return c.parent.ResolveLocation(ctx, location)
	}
	return "", &ResolveError{Location: location, Err: err}
}

// Resource returns the content of location from the first root where it is non-empty.
// Override forms are not considered; this is used to copy templates verbatim.
func (c *Chain) Resource(ctx context.Context, location string) (*Source, error) {
	loc := strings.TrimPrefix(location, "/")
	for link := c; link != nil; link = link.parent {
		content, err := link.root.Open(ctx, loc)
		if err == nil && len(content) > 0 {
			return &Source{Location: link.root.URI() + "/" + loc, Content: content}, nil
		}
	}
	return nil, &NotFoundError{Location: location}
}

// Session carries the override paths already attempted during one resolution,
// including nested includes issued while rendering the result.
type Session struct {
	mu     sync.Mutex
	stacks map[string][]string
}

// NewSession returns an empty resolution session.
func NewSession() *Session {
	return &Session{stacks: make(map[string][]string)}
}

// push records key for loc and reports whether it was new.
func (s *Session) push(loc, key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	stack := s.stacks[loc]
	if slices.Contains(stack, key) {
		return false
	}
	s.stacks[loc] = append(stack, key)
	return true
}

// Attempted returns the override paths tried for loc, oldest first.
func (s *Session) Attempted(loc string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.stacks[loc])
}
