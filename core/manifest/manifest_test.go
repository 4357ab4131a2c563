package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	sumA = "0cc175b9c0f1b6a831c399e269772661"
	sumB = "92eb5ffee6ae2fec3ad71c777531578f"
)

func TestNameFor(t *testing.T) {
	assert.Equal(t, ".generated-files", NameFor(""))
	assert.Equal(t, ".generated-files-server", NameFor("server"))
}

func TestNewSortsByPath(t *testing.T) {
	input := []Entry{{Path: "b/y", Checksum: sumB}, {Path: "a/x", Checksum: sumA}}
	m := New(input)

	want := Manifest{{Path: "a/x", Checksum: sumA}, {Path: "b/y", Checksum: sumB}}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}
	// input untouched
	assert.Equal(t, "b/y", input[0].Path)
}

func TestFormat(t *testing.T) {
	m := New([]Entry{{Path: "b", Checksum: sumB}, {Path: "a", Checksum: sumA}})
	assert.Equal(t, "a,"+sumA+"\nb,"+sumB, string(m.Format()))
	assert.Empty(t, Manifest{}.Format())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Manifest
		wantErr bool
	}{
		{
			name:  "Empty",
			input: "",
			want:  Manifest{},
		},
		{
			name:  "Sorted",
			input: "b," + sumB + "\na," + sumA,
			want:  Manifest{{Path: "a", Checksum: sumA}, {Path: "b", Checksum: sumB}},
		},
		{
			name:  "BlankLinesAndCRLF",
			input: "\na/x," + sumA + "\r\n\r\n",
			want:  Manifest{{Path: "a/x", Checksum: sumA}},
		},
		{
			name:    "MissingChecksum",
			input:   "a/x",
			wantErr: true,
		},
		{
			name:    "TooManyFields",
			input:   "a,b," + sumA,
			wantErr: true,
		},
		{
			name:    "EscapingPath",
			input:   "../x," + sumA,
			wantErr: true,
		},
		{
			name:    "AbsolutePath",
			input:   "/etc/passwd," + sumA,
			wantErr: true,
		},
		{
			name:    "ShortChecksum",
			input:   "a,abc",
			wantErr: true,
		},
		{
			name:    "UppercaseChecksum",
			input:   "a," + strings.ToUpper(sumA),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrFormat))
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseReportsLine(t *testing.T) {
	_, err := Parse(strings.NewReader("a," + sumA + "\nbroken"))
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, "broken", fe.Text)
}

func TestReadMissingIsEmpty(t *testing.T) {
	m, err := Read(t.TempDir(), FileName)
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestWriteThenRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := FromContents(map[string][]byte{"a/x": []byte("a"), "a/y": []byte("b")})

	require.NoError(t, Write(dir, NameFor("client"), m))

	raw, err := os.ReadFile(filepath.Join(dir, ".generated-files-client"))
	require.NoError(t, err)
	assert.Equal(t, "a/x,"+sumA+"\na/y,"+sumB, string(raw))

	got, err := Read(dir, NameFor("client"))
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLookupAndIndex(t *testing.T) {
	m := New([]Entry{{Path: "b", Checksum: sumB}, {Path: "a", Checksum: sumA}})

	sum, ok := m.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, sumB, sum)

	_, ok = m.Lookup("c")
	assert.False(t, ok)

	assert.Equal(t, map[string]string{"a": sumA, "b": sumB}, m.Index())
	assert.Equal(t, []string{"a", "b"}, m.Paths())
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"a/b.txt", false},
		{"dir with space/x", false},
		{"", true},
		{"a,b.txt", true},
		{"a\nb.txt", true},
		{"a\rb.txt", true},
		{`a\b.txt`, true},
		{"../x", true},
		{"/abs", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
