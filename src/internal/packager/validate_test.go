// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package packager

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/extpack-dev/extpack/src/pkg/extension"
	"github.com/extpack-dev/extpack/src/test/testutil"
)

func TestValidateSeedsFileSet(t *testing.T) {
	ctx := testutil.TestContext(t)
	files := minimalProject(t)
	files["icon.png"] = "png-bytes"
	files["extension.go"] = `package main

import (
	"strings"
	"./lib/color"
)

func Extension(t func(string) string) map[string]any {
	return map[string]any{"title": strings.ToUpper(color.Name())}
}
`
	files["lib/color/color.go"] = "package color\n\nfunc Name() string { return \"red\" }\n"
	root := writeProject(t, files)

	p, err := validate(ctx, root)
	require.NoError(t, err)
	require.Equal(t, "widget", p.Manifest.Name)
	// Local relative imports are normalized and kept; external packages are not.
	require.Equal(t, []string{"lib/color"}, p.Modules)
	require.Equal(t, []string{"extension.json", "extension.go", "icon.png", "lib/color"}, p.Files)
}

func TestValidateMissingIconIsNotFatal(t *testing.T) {
	ctx := testutil.TestContext(t)
	root := writeProject(t, minimalProject(t))

	p, err := validate(ctx, root)
	require.NoError(t, err)
	require.NotContains(t, p.Files, "icon.png")
}

func TestValidateManifestParseErrorIsDistinct(t *testing.T) {
	ctx := testutil.TestContext(t)
	files := minimalProject(t)
	files["extension.json"] = `{"name":`
	root := writeProject(t, files)

	_, err := validate(ctx, root)
	require.Error(t, err)
	var parseErr *extension.ManifestParseError
	require.ErrorAs(t, err, &parseErr)
	var missing *MissingRequiredFilesError
	require.False(t, errors.As(err, &missing))
}
