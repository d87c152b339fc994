// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"fmt"
	"strings"
)

// MissingRequiredFilesError indicates one or more mandatory project files are
// absent. It always names every missing file, not just the first.
type MissingRequiredFilesError struct {
	Missing []string
}

func (e *MissingRequiredFilesError) Error() string {
	return fmt.Sprintf("project is missing required files: %s", strings.Join(e.Missing, ", "))
}

// LocaleReadError indicates a locale file failed to be read or parsed during
// precompilation. The same failure during linking silently excludes the file
// instead; only the precompile phase treats it as fatal.
type LocaleReadError struct {
	File string
	Err  error
}

func (e *LocaleReadError) Error() string {
	return fmt.Sprintf("unable to read locale file %s: %s", e.File, e.Err.Error())
}

func (e *LocaleReadError) Unwrap() error {
	return e.Err
}
