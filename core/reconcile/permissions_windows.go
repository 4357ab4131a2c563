//go:build windows

package reconcile

import (
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// applyPermissions sets the read-only attribute from the owner write bit; see attributeMode.
// Failures are logged and swallowed.
func applyPermissions(path string, mode fs.FileMode, logger *zap.Logger) error {
	if err := os.Chmod(path, attributeMode(mode)); err != nil {
		logger.Debug("Could not emulate permissions",
			zap.String("path", path),
			zap.String("permissions", FormatPermissions(mode)),
			zap.Error(err),
		)
	}
	return nil
}
