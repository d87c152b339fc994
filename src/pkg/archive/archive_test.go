// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/extpack-dev/extpack/src/test/testutil"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "extension.go"), []byte("package main\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "lib", "color"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib", "color", "color.go"), []byte("package color\n"), 0o644))
	return root
}

func TestBuildAndList(t *testing.T) {
	ctx := testutil.TestContext(t)
	root := writeProject(t)

	b, err := Build(ctx, root, []string{"extension.go", "lib"})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "widget.extpack")
	require.NoError(t, os.WriteFile(dest, b, 0o644))

	entries, err := List(ctx, dest)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		// The fixed timestamp is on every entry regardless of source mtime.
		require.True(t, e.Modified.Equal(FixedTimestamp), "entry %s carries %s", e.Name, e.Modified)
	}
	require.Contains(t, names, "extension.go")
	require.Contains(t, names, "lib/color/color.go")
}

func TestBuildIsReproducible(t *testing.T) {
	ctx := testutil.TestContext(t)
	root := writeProject(t)

	first, err := Build(ctx, root, []string{"extension.go", "lib"})
	require.NoError(t, err)

	// Touch mtimes between builds; the output must not change.
	require.NoError(t, os.Chtimes(filepath.Join(root, "extension.go"), FixedTimestamp.AddDate(20, 0, 0), FixedTimestamp.AddDate(20, 0, 0)))

	second, err := Build(ctx, root, []string{"extension.go", "lib"})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBuildRejectsSpecialFiles(t *testing.T) {
	ctx := testutil.TestContext(t)
	root := writeProject(t)
	require.NoError(t, os.Symlink(filepath.Join(root, "extension.go"), filepath.Join(root, "link.go")))

	_, err := Build(ctx, root, []string{"link.go"})
	require.Error(t, err)
	var unsupported *UnsupportedFileTypeError
	require.ErrorAs(t, err, &unsupported)
	require.Equal(t, "link.go", unsupported.Path)
}

func TestBuildMissingPath(t *testing.T) {
	ctx := testutil.TestContext(t)
	_, err := Build(ctx, t.TempDir(), []string{"nope.go"})
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	ctx := testutil.TestContext(t)
	root := writeProject(t)

	b, err := Build(ctx, root, []string{"extension.go"})
	require.NoError(t, err)
	dest := filepath.Join(t.TempDir(), "widget.extpack")
	require.NoError(t, os.WriteFile(dest, b, 0o644))

	content, err := ReadFile(ctx, dest, "extension.go")
	require.NoError(t, err)
	require.Equal(t, "package main\n", string(content))

	_, err = ReadFile(ctx, dest, "missing.go")
	require.ErrorContains(t, err, "not found")
}
