// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package sandbox runs extension source in an isolated interpreter to extract its declared metadata.
package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/internal/inspector"
	"github.com/extpack-dev/extpack/src/pkg/extension"
)

// DefaultTimeout bounds a single extension run when the caller's context has no deadline.
// A hung extension must not block the whole build.
const DefaultTimeout = 10 * time.Second

// entrypoint is the function every extension must declare in package main.
const entrypoint = "main.Extension"

// allowedPackages is the stdlib surface extensions may import. Packages with
// filesystem, network, or process access are deliberately absent.
var allowedPackages = map[string]bool{
	"errors":          true,
	"fmt":             true,
	"math":            true,
	"math/rand":       true,
	"regexp":          true,
	"sort":            true,
	"strconv":         true,
	"strings":         true,
	"time":            true,
	"unicode":         true,
	"unicode/utf8":    true,
	"encoding/json":   true,
	"encoding/base64": true,
}

// RunContext is the serializable context passed into a single sandboxed run.
type RunContext struct {
	// Name of the extension, exposed for error messages only.
	Name string
	// Source is the main extension script.
	Source []byte
	// Dir is the project root used to resolve local module imports.
	Dir string
	// Modules are the validated local module paths the source may import.
	Modules []string
}

// ExecutionError wraps a failure from inside the interpreter, naming the extension.
type ExecutionError struct {
	Name string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("extension %s failed in sandbox: %s", e.Name, e.Err.Error())
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Run evaluates the extension source in a fresh interpreter, calls its
// Extension entrypoint with a translator over localeStrings, and decodes the
// returned declaration. Each call gets its own interpreter; nothing is shared
// between runs.
func Run(ctx context.Context, rc RunContext, localeStrings map[string]string) (extension.Metadata, error) {
	if err := validateImports(rc); err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: err}
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	opts := interp.Options{}
	if rc.Dir != "" {
		opts.SourcecodeFilesystem = os.DirFS(rc.Dir)
	}
	i := interp.New(opts)
	if err := i.Use(stdlib.Symbols); err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: fmt.Errorf("failed to load stdlib symbols: %w", err)}
	}

	if _, err := i.EvalWithContext(ctx, string(rc.Source)); err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: fmt.Errorf("evaluation failed: %w", err)}
	}

	v, err := i.Eval(entrypoint)
	if err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: fmt.Errorf("entrypoint %s not found: %w", entrypoint, err)}
	}
	fn, ok := v.Interface().(func(func(string) string) map[string]any)
	if !ok {
		return extension.Metadata{}, &ExecutionError{
			Name: rc.Name,
			Err:  fmt.Errorf("%s has the wrong signature, expected func(func(string) string) map[string]any", entrypoint),
		}
	}

	translate := func(key string) string {
		if s, ok := localeStrings[key]; ok {
			return s
		}
		return key
	}

	declared, err := call(ctx, fn, translate)
	if err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: err}
	}
	md, err := decode(declared)
	if err != nil {
		return extension.Metadata{}, &ExecutionError{Name: rc.Name, Err: err}
	}
	return md, nil
}

// call invokes the interpreted entrypoint on its own goroutine so a hung or
// runaway extension can be abandoned when the context expires.
func call(ctx context.Context, fn func(func(string) string) map[string]any, translate func(string) string) (map[string]any, error) {
	resultCh := make(chan map[string]any, 1)
	errCh := make(chan error, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("extension panicked: %v", r)
			}
		}()
		resultCh <- fn(translate)
	}()

	select {
	case declared := <-resultCh:
		return declared, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, fmt.Errorf("execution timed out: %w", ctx.Err())
	}
}

// validateImports rejects source importing anything outside the stdlib
// whitelist and the project's own validated local modules.
func validateImports(rc RunContext) error {
	deps, err := inspector.ListDependencies(config.MainSourceFile, rc.Source)
	if err != nil {
		return err
	}
	local := make(map[string]bool, len(rc.Modules))
	for _, m := range rc.Modules {
		local[m] = true
	}
	var forbidden []string
	for _, dep := range deps {
		if allowedPackages[dep] {
			continue
		}
		if local[strings.TrimPrefix(dep, "./")] {
			continue
		}
		forbidden = append(forbidden, dep)
	}
	if len(forbidden) > 0 {
		return fmt.Errorf("forbidden imports: %s", strings.Join(forbidden, ", "))
	}
	return nil
}

// decode converts the loosely-typed declaration map into Metadata.
func decode(declared map[string]any) (extension.Metadata, error) {
	if declared == nil {
		return extension.Metadata{}, fmt.Errorf("extension returned no declaration")
	}
	b, err := json.Marshal(declared)
	if err != nil {
		return extension.Metadata{}, fmt.Errorf("declaration is not serializable: %w", err)
	}
	var md extension.Metadata
	if err := json.Unmarshal(b, &md); err != nil {
		return extension.Metadata{}, fmt.Errorf("declaration has the wrong shape: %w", err)
	}
	if md.Title == "" {
		return extension.Metadata{}, fmt.Errorf("extension declared no title")
	}
	return md, nil
}
