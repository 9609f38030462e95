// Package xpath sanitizes object names before they touch the local
// filesystem.
package xpath

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Local converts an object name into a relative filesystem path. Escaped
// characters are decoded, redundant separators collapsed, and names that
// would climb out of the destination directory are rejected.
func Local(name string) (string, error) {
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	if cleaned == "" || cleaned == "." {
		return "", errors.Errorf("object name %q does not map to a local path", name)
	}
	return filepath.FromSlash(cleaned), nil
}
