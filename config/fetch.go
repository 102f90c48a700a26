package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
)

// IsRemote reports whether path names a source that must be downloaded:
// a URL (https://...) or a forced getter (git::, s3::, gcs::).
func IsRemote(path string) bool {
	return strings.Contains(path, "::") || strings.Contains(path, "://")
}

// Fetch downloads a single config file into a temporary directory and
// returns its local path. cleanup removes the directory.
func Fetch(src string) (local string, cleanup func(), err error) {
	dir, err := os.MkdirTemp("", "relief-config-")
	if err != nil {
		return "", nil, fmt.Errorf("creating fetch directory: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	local = filepath.Join(dir, "config.yaml")
	if err := getter.GetFile(local, src); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("fetching config %s: %w", src, err)
	}
	return local, cleanup, nil
}
