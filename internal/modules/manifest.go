// Package modules resolves `use` import paths against a project's search
// roots and reads the project manifest.
package modules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
)

// ManifestName is the file name of the project manifest.
const ManifestName = "zircon.json"

// Manifest is the parsed zircon.json of a project. All fields are optional;
// a missing manifest behaves like an empty one.
type Manifest struct {
	Name string `json:"name,omitempty"`

	// Compiler is a semver constraint the running compiler version must
	// satisfy, e.g. "^0.1.0". Empty means any version.
	Compiler string `json:"compiler,omitempty"`

	// ModulePaths are extra import search roots, relative to the manifest's
	// directory unless absolute.
	ModulePaths []string `json:"modulePaths,omitempty"`
}

// LoadManifest reads and parses the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &m, nil
}

// FindManifest looks for zircon.json in dir. A missing manifest is not an
// error: the returned manifest is empty and the bool reports whether a file
// was found.
func FindManifest(dir string) (*Manifest, bool, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Manifest{}, false, nil
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, false, err
	}
	return m, true, nil
}

// CheckCompiler verifies that version satisfies the manifest's compiler
// constraint. An empty constraint always passes.
func (m *Manifest) CheckCompiler(version string) error {
	if m.Compiler == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Compiler)
	if err != nil {
		return fmt.Errorf("invalid compiler constraint %q: %w", m.Compiler, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid compiler version %q: %w", version, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("compiler v%s does not satisfy project constraint %q", version, m.Compiler)
	}
	return nil
}
