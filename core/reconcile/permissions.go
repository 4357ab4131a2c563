package reconcile

import (
	"fmt"
	"io/fs"
)

const permissionSymbols = "rwxrwxrwx"

// ParsePermissions converts a POSIX symbolic permission string such as "rwxr-xr-x"
// into a file mode.
func ParsePermissions(s string) (fs.FileMode, error) {
	if len(s) != len(permissionSymbols) {
		return 0, fmt.Errorf("%w: permission string %q must have %d characters", ErrInvalidArtifact, s, len(permissionSymbols))
	}

	var mode fs.FileMode
	for i := 0; i < len(permissionSymbols); i++ {
		bit := fs.FileMode(1) << uint(len(permissionSymbols)-1-i)
		switch s[i] {
		case permissionSymbols[i]:
			mode |= bit
		case '-':
		default:
			return 0, fmt.Errorf("%w: invalid permission string %q at position %d", ErrInvalidArtifact, s, i+1)
		}
	}
	return mode, nil
}

// FormatPermissions renders the permission bits of mode in symbolic form.
func FormatPermissions(mode fs.FileMode) string {
	return mode.Perm().String()[1:]
}

// attributeMode maps POSIX bits onto what os.Chmod can express on Windows, where
// only the owner write bit is honored (it clears the read-only attribute). Files
// there are always readable, and executability follows the file extension, so the
// read and execute bits have no counterpart and are dropped. The owner bits decide.
func attributeMode(mode fs.FileMode) fs.FileMode {
	emulated := fs.FileMode(0o444)
	if mode&0o200 != 0 {
		emulated |= 0o222
	}
	return emulated
}
