// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/pkg/archive"
	"github.com/extpack-dev/extpack/src/pkg/extension"
)

// InspectResult is the readable view of an existing archive's contents.
type InspectResult struct {
	Entries  []archive.Entry
	Metadata extension.MergedMetadata
}

// Inspect lists the contents of an archive and decodes the precompiled
// metadata stored inside it.
func Inspect(ctx context.Context, archivePath string) (InspectResult, error) {
	entries, err := archive.List(ctx, archivePath)
	if err != nil {
		return InspectResult{}, err
	}

	b, err := archive.ReadFile(ctx, archivePath, config.MetaFile)
	if err != nil {
		return InspectResult{}, fmt.Errorf("archive has no precompiled metadata: %w", err)
	}
	var md extension.MergedMetadata
	if err := json.Unmarshal(b, &md); err != nil {
		return InspectResult{}, fmt.Errorf("unable to decode precompiled metadata: %w", err)
	}

	return InspectResult{Entries: entries, Metadata: md}, nil
}
