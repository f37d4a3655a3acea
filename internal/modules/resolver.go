package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the extension of Zircon source files. An import path without
// an extension gets it appended before resolution.
const SourceExt = ".zr"

// Resolver maps `use` import paths to files on disk. Roots are searched in
// order and the first hit wins.
type Resolver struct {
	roots []string
}

// NewResolver builds a resolver searching projectDir first, then the
// manifest's modulePaths (resolved against projectDir), then any extra
// roots from the command line.
func NewResolver(projectDir string, manifest *Manifest, extraRoots []string) *Resolver {
	roots := []string{projectDir}
	for _, p := range manifest.ModulePaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(projectDir, p)
		}
		roots = append(roots, p)
	}
	roots = append(roots, extraRoots...)
	return &Resolver{roots: roots}
}

// Roots returns the ordered search roots.
func (r *Resolver) Roots() []string {
	return r.roots
}

// Resolve maps an import path to the file it names. Absolute paths and
// paths escaping their root via ".." are rejected so that imports stay
// inside the search roots.
func (r *Resolver) Resolve(importPath string) (string, error) {
	if importPath == "" {
		return "", fmt.Errorf("empty import path")
	}
	if filepath.IsAbs(importPath) {
		return "", fmt.Errorf("import path must be relative: %q", importPath)
	}

	rel := filepath.FromSlash(importPath)
	if !strings.HasSuffix(rel, SourceExt) {
		rel += SourceExt
	}
	if rel != filepath.Clean(rel) || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid import path: %q", importPath)
	}

	for _, root := range r.roots {
		candidate := filepath.Join(root, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("cannot resolve import %q in %d search root(s)", importPath, len(r.roots))
}
