// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/internal/inspector"
	"github.com/extpack-dev/extpack/src/pkg/extension"
	"github.com/extpack-dev/extpack/src/pkg/logger"
)

// Project is the in-memory record of one extension project, threaded through
// the pipeline stage by stage. It is owned exclusively by a single build.
type Project struct {
	// Dir is the absolute project root.
	Dir string
	// Manifest is the parsed extension manifest.
	Manifest extension.Manifest
	// Source is the main extension script.
	Source []byte
	// Files is the ordered set of project-relative paths that ship in the archive.
	Files []string
	// Modules are the local module directories the main script imports.
	Modules []string
}

// requiredFiles every project must carry at its root.
var requiredFiles = []string{config.ManifestFile, config.MainSourceFile}

// validate checks the project directory for the mandatory files, parses the
// manifest, and seeds the file set with the main script, the manifest, the
// icon when present, and the script's local module dependencies.
func validate(ctx context.Context, dir string) (*Project, error) {
	l := logger.From(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read project directory %s: %w", dir, err)
	}
	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name()] = true
	}

	var missing []string
	for _, name := range requiredFiles {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingRequiredFilesError{Missing: missing}
	}

	manifestBytes, err := os.ReadFile(filepath.Join(dir, config.ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", config.ManifestFile, err)
	}
	manifest, err := extension.ParseManifest(manifestBytes)
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(filepath.Join(dir, config.MainSourceFile))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", config.MainSourceFile, err)
	}

	deps, err := inspector.ListDependencies(config.MainSourceFile, source)
	if err != nil {
		return nil, err
	}
	modules := inspector.LocalDependencies(deps)

	files := append([]string{}, requiredFiles...)
	if present[config.IconFile] {
		files = append(files, config.IconFile)
	} else {
		l.Warn("project has no icon, continuing without one", "file", config.IconFile)
	}
	files = append(files, modules...)

	return &Project{
		Dir:      dir,
		Manifest: manifest,
		Source:   source,
		Files:    files,
		Modules:  modules,
	}, nil
}
