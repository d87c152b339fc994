// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package packager implements the pipeline that turns an extension project
// directory into a single deployable archive.
package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"

	"github.com/extpack-dev/extpack/src/config/lang"
	"github.com/extpack-dev/extpack/src/pkg/archive"
	"github.com/extpack-dev/extpack/src/pkg/logger"
)

// CreateOptions are the optional parameters to Create.
type CreateOptions struct {
	// SkipConfirm answers yes to the overwrite prompt without asking.
	SkipConfirm bool
}

// Create runs the full pipeline: validate the project's files, link optional
// resources, precompile per-locale metadata, build the deterministic archive,
// and write it to the resolved output path. The first error aborts the
// remaining stages. On success it returns the final archive path.
func Create(ctx context.Context, projectDir, output string, opts CreateOptions) (string, error) {
	l := logger.From(ctx)

	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("unable to resolve project directory %s: %w", projectDir, err)
	}

	l.Info("validating project", "dir", dir)
	p, err := validate(ctx, dir)
	if err != nil {
		return "", err
	}

	if err := link(ctx, p); err != nil {
		return "", err
	}
	l.Debug("linked project file set", "files", p.Files)

	l.Info("precompiling localized metadata", "name", p.Manifest.Name)
	if err := precompile(ctx, p); err != nil {
		return "", err
	}

	l.Info("building archive", "entries", len(p.Files))
	b, err := archive.Build(ctx, p.Dir, p.Files)
	if err != nil {
		return "", err
	}

	dest, err := resolveOutput(output, p.Manifest.Name)
	if err != nil {
		return "", err
	}
	if err := confirmOverwrite(dest, opts.SkipConfirm); err != nil {
		return "", err
	}
	if err := writeArchive(dest, b); err != nil {
		return "", err
	}

	l.Info("archive created", "path", dest)
	return dest, nil
}

// confirmOverwrite prompts before clobbering an existing archive unless the
// caller already confirmed.
func confirmOverwrite(dest string, skip bool) error {
	if skip {
		return nil
	}
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		return nil
	}
	confirmed := false
	prompt := &survey.Confirm{Message: fmt.Sprintf(lang.CmdCreateOverwrite, dest)}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return fmt.Errorf("confirm failed: %w", err)
	}
	if !confirmed {
		return errors.New(lang.CmdCreateErrCancel)
	}
	return nil
}

// writeArchive stages the archive next to its destination and renames it into
// place so an interrupted write cannot leave a partial artifact.
func writeArchive(dest string, b []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("unable to stage archive near %s: %w", dest, err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()

	if _, err := tmp.Write(b); err != nil {
		return errors.Join(fmt.Errorf("unable to write archive: %w", err), tmp.Close())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finish writing archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("unable to move archive to %s: %w", dest, err)
	}
	return nil
}
