package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// WriteFile writes content to rel below root. It reports false without
// touching the file when the existing content has the same BLAKE2b-256 digest.
// New content is written to a temp file and renamed into place.
func WriteFile(ctx context.Context, root, rel string, content []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	full, err := resolve(root, rel)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(full)
	switch {
	case err == nil:
		if Digest(existing) == Digest(content) {
			return false, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", full, err)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".protoc-c-enum-*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	_, writeErr := tmp.Write(content)
	closeErr := tmp.Close()
	if writeErr != nil {
		cleanup()
		return false, fmt.Errorf("write temp file: %w", writeErr)
	}
	if closeErr != nil {
		cleanup()
		return false, fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return false, fmt.Errorf("set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, full); err != nil {
		cleanup()
		return false, fmt.Errorf("rename temp file: %w", err)
	}
	return true, nil
}

// Digest returns the BLAKE2b-256 digest of data.
func Digest(data []byte) [blake2b.Size256]byte {
	return blake2b.Sum256(data)
}

func resolve(root, rel string) (string, error) {
	if rel == "" || filepath.IsAbs(rel) || strings.HasPrefix(rel, "/") {
		return "", fmt.Errorf("invalid output path %q", rel)
	}
	full := filepath.Join(root, filepath.FromSlash(rel))

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve output root: %w", err)
	}
	absFull, err := filepath.Abs(full)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	within, err := filepath.Rel(absRoot, absFull)
	if err != nil || within == "." || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path escapes root: %q", rel)
	}
	return full, nil
}
