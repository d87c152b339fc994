// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/internal/inspector"
	"github.com/extpack-dev/extpack/src/pkg/extension"
	"github.com/extpack-dev/extpack/src/pkg/logger"
)

// link discovers the optional locale and autocomplete resources, unions them
// into the file set, and fixes the set into its final deterministic order.
func link(ctx context.Context, p *Project) error {
	locales, err := linkLocales(ctx, p.Dir)
	if err != nil {
		return err
	}
	scripts, err := linkAutocomplete(p.Dir)
	if err != nil {
		return err
	}

	p.Files = append(p.Files, locales...)
	p.Files = append(p.Files, scripts...)
	p.Files = dedupeSort(p.Files)
	return nil
}

// linkLocales returns the project-relative paths of every valid locale file.
// A missing locales directory is not an error. Files that are not valid JSON
// objects are dropped silently; only the precompile phase treats locale
// failures as fatal.
func linkLocales(ctx context.Context, dir string) ([]string, error) {
	l := logger.From(ctx)

	entries, err := os.ReadDir(filepath.Join(dir, config.LocalesDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s directory: %w", config.LocalesDir, err)
	}

	var locales []string
	for _, e := range entries {
		if e.IsDir() || !extension.IsLocaleName(e.Name()) {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(config.LocalesDir, e.Name()))
		b, err := os.ReadFile(filepath.Join(dir, config.LocalesDir, e.Name()))
		if err != nil {
			l.Debug("skipping unreadable locale file", "file", rel, "error", err)
			continue
		}
		var parsed any
		if err := json.Unmarshal(b, &parsed); err != nil {
			l.Debug("skipping invalid locale file", "file", rel, "error", err)
			continue
		}
		if _, ok := parsed.(map[string]any); !ok {
			l.Debug("skipping locale file that is not a JSON object", "file", rel)
			continue
		}
		locales = append(locales, rel)
	}
	return locales, nil
}

// linkAutocomplete returns the project-relative paths of every autocomplete
// script. A missing directory is not an error, but a script that declares any
// import fails the build.
func linkAutocomplete(dir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(dir, config.AutocompleteDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s directory: %w", config.AutocompleteDir, err)
	}

	var scripts []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), config.SourceSuffix) {
			continue
		}
		rel := filepath.ToSlash(filepath.Join(config.AutocompleteDir, e.Name()))
		b, err := os.ReadFile(filepath.Join(dir, config.AutocompleteDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("unable to read autocomplete script %s: %w", rel, err)
		}
		if err := inspector.EnsureNoImports(rel, b); err != nil {
			return nil, err
		}
		scripts = append(scripts, rel)
	}
	return scripts, nil
}

// dedupeSort removes duplicates and orders the file set by path depth first,
// then lexicographically, so the set is identical across repeated runs.
func dedupeSort(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := files[:0]
	for _, f := range files {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := strings.Count(out[i], "/"), strings.Count(out[j], "/")
		if di != dj {
			return di < dj
		}
		return out[i] < out[j]
	})
	return out
}
