package reconcile

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermissions(t *testing.T) {
	tests := []struct {
		input   string
		want    fs.FileMode
		wantErr bool
	}{
		{input: "rwxr-xr-x", want: 0o755},
		{input: "rw-r--r--", want: 0o644},
		{input: "---------", want: 0},
		{input: "rwxrwxrwx", want: 0o777},
		{input: "r--------", want: 0o400},
		{input: "rwx", wantErr: true},
		{input: "xwrr-xr-x", wantErr: true},
		{input: "rwxr-xr-xx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePermissions(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidArtifact)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, FormatPermissions(got))
		})
	}
}

func TestAttributeMode(t *testing.T) {
	tests := []struct {
		input string
		want  fs.FileMode
	}{
		{"rwxr-xr-x", 0o666},
		{"rw-------", 0o666},
		{"r--r--r--", 0o444},
		{"r-xrwxrwx", 0o444},
		{"---------", 0o444},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParsePermissions(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, attributeMode(mode))
		})
	}
}
