// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/extpack-dev/extpack/src/config"
)

// resolveOutput computes the final archive path. A destination naming an
// existing directory gets `<name><suffix>` joined onto it; anything else is
// taken literally so the caller can rename the artifact. Missing directories
// are never created here.
func resolveOutput(dest, name string) (string, error) {
	if dest == "" {
		dest = "."
	}
	abs, err := filepath.Abs(dest)
	if err != nil {
		return "", fmt.Errorf("unable to resolve output path %s: %w", dest, err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return filepath.Join(dest, name+config.ArchiveSuffix), nil
	}
	return dest, nil
}
