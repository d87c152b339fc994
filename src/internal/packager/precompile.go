// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/internal/sandbox"
	"github.com/extpack-dev/extpack/src/pkg/extension"
	"github.com/extpack-dev/extpack/src/pkg/logger"
)

// precompile runs the extension once per locale (plus once with no string
// table as the default), merges the per-locale metadata, writes the hidden
// metadata file to the project root, and adds it to the file set.
func precompile(ctx context.Context, p *Project) error {
	l := logger.From(ctx)

	records, err := loadLocaleRecords(p)
	if err != nil {
		return err
	}
	runs := append([]extension.LocaleRecord{{Code: config.DefaultLocale}}, records...)
	l.Debug("running extension per locale", "name", p.Manifest.Name, "runs", len(runs))

	// Runs are independent and execute concurrently; results keep the input
	// order so the merge remains deterministic.
	results := make([]extension.Metadata, len(runs))
	g, gctx := errgroup.WithContext(ctx)
	for i, rec := range runs {
		g.Go(func() error {
			md, err := sandbox.Run(gctx, sandbox.RunContext{
				Name:    p.Manifest.Name,
				Source:  p.Source,
				Dir:     p.Dir,
				Modules: p.Modules,
			}, rec.Strings)
			if err != nil {
				return err
			}
			results[i] = md
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// A leaf a locale left untranslated echoes the default run and is dropped,
	// so each locale is only keyed for the strings it actually supplied.
	merged := results[0].Localize(runs[0].Code)
	for i := 1; i < len(results); i++ {
		merged.Merge(results[i].Overrides(results[0]).Localize(runs[i].Code))
	}

	b, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize precompiled metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(p.Dir, config.MetaFile), b, 0o644); err != nil {
		return fmt.Errorf("unable to write %s: %w", config.MetaFile, err)
	}
	p.Files = append(p.Files, config.MetaFile)
	return nil
}

// loadLocaleRecords reads every locale file in the file set. Unlike linking,
// a failure here aborts the build.
func loadLocaleRecords(p *Project) ([]extension.LocaleRecord, error) {
	var records []extension.LocaleRecord
	for _, f := range p.Files {
		if !strings.HasPrefix(f, config.LocalesDir+"/") {
			continue
		}
		code, ok := extension.LocaleCode(f)
		if !ok {
			continue
		}
		b, err := os.ReadFile(filepath.Join(p.Dir, filepath.FromSlash(f)))
		if err != nil {
			return nil, &LocaleReadError{File: f, Err: err}
		}
		var table map[string]string
		if err := json.Unmarshal(b, &table); err != nil {
			return nil, &LocaleReadError{File: f, Err: err}
		}
		records = append(records, extension.LocaleRecord{Code: code, Strings: table})
	}
	return records, nil
}
