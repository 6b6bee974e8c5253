package domain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ResolveRoot returns the absolute, symlink-free form of an extraction root.
// A root that does not exist or is not a directory yields *NotFoundError.
func ResolveRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: absRoot, Err: err}
		}
		return "", fmt.Errorf("resolving root %s: %w", absRoot, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: absRoot, Err: err}
		}
		return "", fmt.Errorf("checking root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return "", &NotFoundError{Path: absRoot, Err: fmt.Errorf("%w: not a directory", fs.ErrNotExist)}
	}
	return resolved, nil
}
