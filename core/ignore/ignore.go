package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// FileName is the name of the per-directory ignore file.
const FileName = ".generator-ignore"

// ErrOutsideRoot is returned when a candidate path is not below the matcher root.
var ErrOutsideRoot = errors.New("path is outside the output root")

// Matcher evaluates ignore rules below a fixed root. It is safe for concurrent use.
type Matcher struct {
	root   string
	logger *zap.Logger

	mu    sync.RWMutex
	cache map[string][]string
	sf    singleflight.Group
}

// New creates a matcher rooted at root. A nil logger disables logging.
func New(root string, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return &Matcher{
		root:   abs,
		logger: logger,
		cache:  make(map[string][]string),
	}
}

// Root returns the absolute output root.
func (m *Matcher) Root() string {
	return m.root
}

// ShouldExclude reports whether the file at path is covered by an ignore rule.
// path may be absolute or relative to the working directory; it must lie below the root.
func (m *Matcher) ShouldExclude(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	rel, err := filepath.Rel(m.root, abs)
	if err != nil || !filepath.IsLocal(rel) {
		return false, fmt.Errorf("%w: %s is not part of %s", ErrOutsideRoot, abs, m.root)
	}
	if rel == "." {
		// the root has no parent level to match against
		return false, nil
	}

	for dir := filepath.Dir(abs); ; dir = filepath.Dir(dir) {
		patterns := m.patterns(dir)
		if len(patterns) > 0 {
			candidate, err := filepath.Rel(dir, abs)
			if err != nil {
				return false, err
			}
			candidate = filepath.ToSlash(candidate)
			for _, pattern := range patterns {
				if ok, _ := doublestar.Match(pattern, candidate); ok {
					return true, nil
				}
			}
		}
		if dir == m.root {
			return false, nil
		}
	}
}

// ShouldExcludeRel is ShouldExclude for a slash-separated path relative to the root.
func (m *Matcher) ShouldExcludeRel(rel string) (bool, error) {
	return m.ShouldExclude(filepath.Join(m.root, filepath.FromSlash(rel)))
}

// patterns returns the cached patterns for dir, loading them on first use.
func (m *Matcher) patterns(dir string) []string {
	m.mu.RLock()
	patterns, ok := m.cache[dir]
	m.mu.RUnlock()
	if ok {
		return patterns
	}

	v, _, _ := m.sf.Do(dir, func() (any, error) {
		m.mu.RLock()
		cached, ok := m.cache[dir]
		m.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded := m.load(dir)

		m.mu.Lock()
		m.cache[dir] = loaded
		m.mu.Unlock()
		return loaded, nil
	})
	return v.([]string)
}

func (m *Matcher) load(dir string) []string {
	file := filepath.Join(dir, FileName)
	data, err := os.ReadFile(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			m.logger.Warn("Could not read ignore file, treating it as empty",
				zap.String("file", file),
				zap.Error(err),
			)
		}
		return nil
	}

	patterns, invalid := ParsePatterns(data)
	for _, p := range invalid {
		m.logger.Warn("Skipping invalid ignore pattern",
			zap.String("file", file),
			zap.String("pattern", p),
		)
	}
	if len(patterns) > 0 {
		m.logger.Debug("Loaded ignore file",
			zap.String("file", file),
			zap.Int("patterns", len(patterns)),
		)
	}
	return patterns
}

// ParsePatterns extracts glob patterns from ignore file content.
// It returns the usable patterns and, separately, any lines that are not valid globs.
func ParsePatterns(data []byte) (patterns []string, invalid []string) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(filepath.ToSlash(line), "/")
		if !doublestar.ValidatePattern(line) {
			invalid = append(invalid, line)
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, invalid
}
