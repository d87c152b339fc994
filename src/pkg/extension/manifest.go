// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package extension contains the data model for extension projects and their precompiled metadata.
package extension

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed extension.schema.json
var manifestSchema []byte

// Manifest is the parsed contents of an extension project's manifest file.
type Manifest struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Author      string `json:"author,omitempty"`
}

// ManifestParseError indicates the manifest file was unreadable, not valid JSON, or failed schema validation.
type ManifestParseError struct {
	Err error
}

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("invalid extension manifest: %s", e.Err.Error())
}

func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// ParseManifest parses manifest bytes, validates them against the manifest schema, and checks the
// version field is semver when present.
func ParseManifest(b []byte) (Manifest, error) {
	var untyped interface{}
	if err := json.Unmarshal(b, &untyped); err != nil {
		return Manifest{}, &ManifestParseError{Err: err}
	}

	schemaLoader := gojsonschema.NewBytesLoader(manifestSchema)
	documentLoader := gojsonschema.NewGoLoader(untyped)
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return Manifest{}, &ManifestParseError{Err: err}
	}
	if !result.Valid() {
		msg := "schema violations:"
		for _, desc := range result.Errors() {
			msg = fmt.Sprintf("%s\n - %s", msg, desc.String())
		}
		return Manifest{}, &ManifestParseError{Err: fmt.Errorf("%s", msg)}
	}

	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, &ManifestParseError{Err: err}
	}
	if m.Version != "" {
		if _, err := semver.NewVersion(m.Version); err != nil {
			return Manifest{}, &ManifestParseError{Err: fmt.Errorf("version %q is not semver: %w", m.Version, err)}
		}
	}
	return m, nil
}
