// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package inspector statically examines extension source files for their declared imports.
package inspector

import (
	"fmt"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
)

// ImportViolationError indicates a script that must be self-contained declares imports.
type ImportViolationError struct {
	File    string
	Imports []string
}

func (e *ImportViolationError) Error() string {
	return fmt.Sprintf("autocomplete script %s must be self-contained but imports %s",
		e.File, strings.Join(e.Imports, ", "))
}

// ListDependencies parses source and returns every import path it declares, in
// declaration order. Only the import clauses are parsed.
func ListDependencies(filename string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ImportsOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", filename, err)
	}
	deps := make([]string, 0, len(f.Imports))
	for _, imp := range f.Imports {
		p, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			return nil, fmt.Errorf("unable to parse import path %s in %s: %w", imp.Path.Value, filename, err)
		}
		deps = append(deps, p)
	}
	return deps, nil
}

// LocalDependencies filters paths down to local relative imports and strips
// the leading current-directory marker. External package paths are dropped.
func LocalDependencies(paths []string) []string {
	var local []string
	for _, p := range paths {
		if strings.HasPrefix(p, "./") {
			local = append(local, strings.TrimPrefix(p, "./"))
		}
	}
	return local
}

// EnsureNoImports fails with an *ImportViolationError if the source declares any import.
func EnsureNoImports(filename string, src []byte) error {
	deps, err := ListDependencies(filename, src)
	if err != nil {
		return err
	}
	if len(deps) > 0 {
		return &ImportViolationError{File: filename, Imports: deps}
	}
	return nil
}
