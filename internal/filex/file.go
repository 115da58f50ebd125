// Package filex has small filesystem helpers for client-side downloads.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnsureDir creates base/name if needed and returns its absolute path.
// An empty base means the working directory.
func EnsureDir(base, name string) (string, error) {
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		base = cwd
	}

	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// FreePath returns dir/name, or dir/stem-N.ext for the first N that does not
// exist yet, so a repeated download never overwrites an earlier one.
func FreePath(dir, name string) string {
	p := filepath.Join(dir, name)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return p
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 1; ; n++ {
		p = filepath.Join(dir, stem+"-"+strconv.Itoa(n)+ext)
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p
		}
	}
}
