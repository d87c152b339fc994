// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package config contains the fixed names and global configuration for extpack.
package config

// CLIVersion track the version of the CLI
var CLIVersion = "unset"

// Fixed names inside an extension project directory.
const (
	// ManifestFile is the JSON manifest every extension project must carry.
	ManifestFile = "extension.json"
	// MainSourceFile is the entry-point script every extension project must carry.
	MainSourceFile = "extension.go"
	// IconFile is the optional icon resource at the project root.
	IconFile = "icon.png"
	// LocalesDir holds per-locale JSON string tables.
	LocalesDir = "locales"
	// AutocompleteDir holds self-contained autocomplete scripts.
	AutocompleteDir = "autocomplete"
	// MetaFile is the generated hidden metadata file added to the archive.
	MetaFile = ".meta.json"
	// ArchiveSuffix is the extension of the produced artifact.
	ArchiveSuffix = ".extpack"
	// SourceSuffix is the extension of interpreted extension scripts.
	SourceSuffix = ".go"
)

// DefaultLocale is the locale code used for the run without a string table.
const DefaultLocale = "default"

// CommonOptions tracks the user-defined preferences used across commands.
var CommonOptions struct {
	// Confirm skips interactive prompts and assumes yes.
	Confirm bool
}
