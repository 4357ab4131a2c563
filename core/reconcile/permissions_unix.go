//go:build !windows

package reconcile

import (
	"io/fs"
	"os"

	"go.uber.org/zap"
)

func applyPermissions(path string, mode fs.FileMode, _ *zap.Logger) error {
	return os.Chmod(path, mode)
}
