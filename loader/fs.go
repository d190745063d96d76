//go:build !wasip1 && !js

package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/n3lang/n3c/location"
)

// ScanDir walks root for *.n3 files using os.Root-sandboxed access, the
// same kernel-enforced approach the teacher's rootLoader uses for
// import resolution, so a symlink or ".." segment inside root can never
// escape it. Results are sorted by relative path for deterministic
// registration order.
func ScanDir(root string) ([]Source, error) {
	canonicalRoot, err := makeCanonicalPath(root)
	if err != nil {
		return nil, fmt.Errorf("canonicalize module root %q: %w", root, err)
	}

	rl, err := newRootLoader(canonicalRoot)
	if err != nil {
		return nil, err
	}
	defer rl.Close()

	var relPaths []string
	walkErr := filepath.WalkDir(canonicalRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".n3") {
			return nil
		}
		rel, err := filepath.Rel(canonicalRoot, path)
		if err != nil {
			return err
		}
		relPaths = append(relPaths, rel)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan module root %q: %w", root, walkErr)
	}
	sort.Strings(relPaths)

	out := make([]Source, 0, len(relPaths))
	for _, rel := range relPaths {
		content, id, err := rl.readFile(rel)
		if err != nil {
			return nil, err
		}
		out = append(out, Source{ID: id, Path: rel, Text: string(content)})
	}
	return out, nil
}

// rootLoader provides sandboxed file access under a canonicalized
// module root using os.Root, mirroring the teacher's import loader.
type rootLoader struct {
	root     *os.Root
	rootPath string
}

func newRootLoader(canonicalRoot string) (*rootLoader, error) {
	root, err := os.OpenRoot(canonicalRoot)
	if err != nil {
		return nil, fmt.Errorf("open module root %q: %w", canonicalRoot, err)
	}
	return &rootLoader{root: root, rootPath: canonicalRoot}, nil
}

func (rl *rootLoader) openFile(relativePath string) (*os.File, error) {
	cleanPath := filepath.Clean(relativePath)
	f, err := rl.root.Open(cleanPath)
	if err != nil {
		return nil, rl.handleOpenError(err, relativePath)
	}
	return f, nil
}

func (rl *rootLoader) readFile(relativePath string) ([]byte, location.SourceID, error) {
	f, err := rl.openFile(relativePath)
	if err != nil {
		return nil, location.SourceID{}, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, location.SourceID{}, fmt.Errorf("read %q: %w", relativePath, err)
	}

	cleanPath := filepath.Clean(relativePath)
	absPath := filepath.Join(rl.rootPath, cleanPath)
	id, err := location.SourceIDFromAbsolutePath(absPath)
	if err != nil {
		return nil, location.SourceID{}, fmt.Errorf("source id for %q: %w", relativePath, err)
	}
	return content, id, nil
}

func (rl *rootLoader) handleOpenError(err error, requestedPath string) error {
	if errors.Is(err, fs.ErrInvalid) {
		return &pathEscapeError{path: requestedPath}
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) && pathErr.Err != nil && strings.Contains(pathErr.Err.Error(), "escapes") {
		return &pathEscapeError{path: requestedPath}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file %q not found", requestedPath)
	}
	return fmt.Errorf("open %q: %w", requestedPath, err)
}

func (rl *rootLoader) Close() error {
	if err := rl.root.Close(); err != nil {
		return fmt.Errorf("close module root: %w", err)
	}
	return nil
}

func makeCanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("abs path: %w", err)
	}
	cleaned := filepath.Clean(abs)
	if resolved, err := filepath.EvalSymlinks(cleaned); err == nil {
		return resolved, nil
	}
	return cleaned, nil
}
