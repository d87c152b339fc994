// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package sandbox

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/pkg/extension"
)

const widgetSource = `package main

func Extension(t func(string) string) map[string]any {
	return map[string]any{
		"title":       t("title"),
		"description": t("description"),
		"params": []any{
			map[string]any{"name": "size", "type": "number", "description": t("param.size")},
		},
	}
}
`

func TestRunDefaultLocale(t *testing.T) {
	rc := RunContext{Name: "widget", Source: []byte(widgetSource)}
	md, err := Run(context.Background(), rc, nil)
	require.NoError(t, err)
	// No string table, so keys pass through untranslated.
	require.Equal(t, "title", md.Title)
	require.Equal(t, "description", md.Description)
	require.Len(t, md.Params, 1)
	require.Equal(t, "size", md.Params[0].Name)
	require.Equal(t, "param.size", md.Params[0].Description)
}

func TestRunTranslatesStrings(t *testing.T) {
	rc := RunContext{Name: "widget", Source: []byte(widgetSource)}
	md, err := Run(context.Background(), rc, map[string]string{
		"title":      "Engenhoca",
		"param.size": "Tamanho",
	})
	require.NoError(t, err)
	require.Equal(t, "Engenhoca", md.Title)
	// Missing keys fall back to the key itself.
	require.Equal(t, "description", md.Description)
	require.Equal(t, "Tamanho", md.Params[0].Description)
}

func TestRunRejectsForbiddenImports(t *testing.T) {
	src := []byte(`package main

import "os"

func Extension(t func(string) string) map[string]any {
	return map[string]any{"title": os.Getenv("HOME")}
}
`)
	_, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
	require.Error(t, err)
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	require.Contains(t, err.Error(), "forbidden imports")
}

func TestRunParseErrorNamesSourceFile(t *testing.T) {
	src := []byte("package main\n\nimport \"os\n")
	_, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
	require.Error(t, err)
	// The error points at the source file, not the manifest name.
	require.Contains(t, err.Error(), config.MainSourceFile)
}

func TestRunAllowsWhitelistedStdlib(t *testing.T) {
	src := []byte(`package main

import "strings"

func Extension(t func(string) string) map[string]any {
	return map[string]any{"title": strings.ToUpper(t("title"))}
}
`)
	md, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
	require.NoError(t, err)
	require.Equal(t, "TITLE", md.Title)
}

func TestRunMissingEntrypoint(t *testing.T) {
	src := []byte(`package main

func NotExtension() {}
`)
	_, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "main.Extension")
}

func TestRunMissingTitle(t *testing.T) {
	src := []byte(`package main

func Extension(t func(string) string) map[string]any {
	return map[string]any{"description": "no title"}
}
`)
	_, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no title")
}

func TestRunTimesOut(t *testing.T) {
	src := []byte(`package main

func Extension(t func(string) string) map[string]any {
	for {
	}
}
`)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := Run(ctx, RunContext{Name: "widget", Source: src}, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRunIsolation(t *testing.T) {
	// Two runs must not share interpreter state.
	src := []byte(`package main

var counter int

func Extension(t func(string) string) map[string]any {
	counter++
	if counter > 1 {
		return map[string]any{"title": "shared state"}
	}
	return map[string]any{"title": "fresh"}
}
`)
	var last extension.Metadata
	for i := 0; i < 2; i++ {
		md, err := Run(context.Background(), RunContext{Name: "widget", Source: src}, nil)
		require.NoError(t, err)
		last = md
	}
	require.Equal(t, "fresh", last.Title)
}
