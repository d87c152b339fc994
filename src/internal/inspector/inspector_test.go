// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package inspector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListDependencies(t *testing.T) {
	src := []byte(`package main

import (
	"strings"
	"./helpers"
)

import "fmt"

func Extension(t func(string) string) map[string]any { return nil }
`)
	deps, err := ListDependencies("extension.go", src)
	require.NoError(t, err)
	require.Equal(t, []string{"strings", "./helpers", "fmt"}, deps)
}

func TestListDependenciesBadSource(t *testing.T) {
	_, err := ListDependencies("extension.go", []byte("not go at all"))
	require.Error(t, err)
}

func TestLocalDependencies(t *testing.T) {
	local := LocalDependencies([]string{"strings", "./helpers", "fmt", "./lib/color"})
	require.Equal(t, []string{"helpers", "lib/color"}, local)
}

func TestEnsureNoImports(t *testing.T) {
	clean := []byte(`package main

func Complete(prefix string) []string { return nil }
`)
	require.NoError(t, EnsureNoImports("clean.go", clean))

	dirty := []byte(`package main

import "os"

func Complete(prefix string) []string { return nil }
`)
	err := EnsureNoImports("dirty.go", dirty)
	require.Error(t, err)
	var violation *ImportViolationError
	require.ErrorAs(t, err, &violation)
	require.Equal(t, "dirty.go", violation.File)
	require.Contains(t, err.Error(), "dirty.go")
	require.Contains(t, err.Error(), "os")
}
