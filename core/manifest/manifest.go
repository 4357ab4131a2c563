package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"model-generator/core/checksum"
)

// FileName is the manifest name used when no discriminator is configured.
const FileName = ".generated-files"

const separator = ","

// NameFor returns the manifest file name for a discriminator value.
// An empty discriminator maps to FileName.
func NameFor(discriminator string) string {
	if discriminator == "" {
		return FileName
	}
	return FileName + "-" + discriminator
}

// Entry is a single manifest record.
type Entry struct {
	// Path is relative to the output root and always uses forward slashes.
	Path string `json:"path"`

	// Checksum is the content digest of the file.
	Checksum string `json:"checksum"`
}

// String returns the serialized "<path>,<checksum>" form of the entry.
func (e Entry) String() string {
	return e.Path + separator + e.Checksum
}

// ParseEntry parses a single "<path>,<checksum>" record.
func ParseEntry(text string) (Entry, error) {
	parts := strings.Split(text, separator)
	if len(parts) != 2 {
		return Entry{}, &FormatError{Text: text, Reason: fmt.Sprintf("expected 2 fields, got %d", len(parts))}
	}

	entry := Entry{Path: parts[0], Checksum: parts[1]}
	if err := ValidatePath(entry.Path); err != nil {
		return Entry{}, &FormatError{Text: text, Reason: err.Error()}
	}
	if !checksum.Valid(entry.Checksum) {
		return Entry{}, &FormatError{Text: text, Reason: fmt.Sprintf("invalid checksum %q", entry.Checksum)}
	}
	return entry, nil
}

// ValidatePath checks that p is a non-empty slash-separated path that stays inside the output root
// and can be stored as a manifest record.
func ValidatePath(p string) error {
	if p == "" {
		return errors.New("empty path")
	}
	if strings.ContainsAny(p, separator+"\r\n") {
		return fmt.Errorf("path %q contains a separator or line break", p)
	}
	if strings.Contains(p, `\`) {
		return errors.New("path must use forward slashes")
	}
	if path.IsAbs(p) || !filepath.IsLocal(filepath.FromSlash(p)) {
		return fmt.Errorf("path %q escapes the output root", p)
	}
	return nil
}

// Manifest is an ordered list of entries, sorted by path.
type Manifest []Entry

// New returns a manifest holding entries sorted by path.
// The input slice is not modified.
func New(entries []Entry) Manifest {
	m := make(Manifest, len(entries))
	copy(m, entries)
	sort.Slice(m, func(i, j int) bool {
		return m[i].Path < m[j].Path
	})
	return m
}

// Index returns the entries keyed by path.
func (m Manifest) Index() map[string]string {
	index := make(map[string]string, len(m))
	for _, e := range m {
		index[e.Path] = e.Checksum
	}
	return index
}

// Paths returns the entry paths in manifest order.
func (m Manifest) Paths() []string {
	paths := make([]string, len(m))
	for i, e := range m {
		paths[i] = e.Path
	}
	return paths
}

// Lookup returns the checksum recorded for p.
func (m Manifest) Lookup(p string) (string, bool) {
	i := sort.Search(len(m), func(i int) bool { return m[i].Path >= p })
	if i < len(m) && m[i].Path == p {
		return m[i].Checksum, true
	}
	return "", false
}

// Format serializes the manifest. Lines are joined by "\n" without a trailing newline.
func (m Manifest) Format() []byte {
	var buf bytes.Buffer
	for i, e := range m {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(e.String())
	}
	return buf.Bytes()
}

// Parse reads a manifest. Blank lines are skipped and a trailing "\r" is tolerated.
func Parse(r io.Reader) (Manifest, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		entry, err := ParseEntry(text)
		if err != nil {
			var fe *FormatError
			if errors.As(err, &fe) {
				fe.Line = line
			}
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	return New(entries), nil
}

// Read loads the manifest called name from dir.
// A missing manifest is not an error: it yields an empty manifest.
func Read(dir, name string) (Manifest, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Manifest{}, nil
		}
		return nil, err
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return m, nil
}

// Write stores m as dir/name, replacing any previous manifest.
// The content goes to a temporary file first and is renamed into place.
func Write(dir, name string, m Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(m.Format()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// FromContents builds a manifest from a path-to-content map.
func FromContents(contents map[string][]byte) Manifest {
	entries := make([]Entry, 0, len(contents))
	for p, c := range contents {
		entries = append(entries, Entry{Path: p, Checksum: checksum.Bytes(c)})
	}
	return New(entries)
}
