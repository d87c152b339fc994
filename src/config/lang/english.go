//go:build !alt_language

// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package lang contains the language strings for english used by extpack
// Alternative languages can be created by duplicating this file and changing the build tag to "//go:build alt_language && <language>"
package lang

// All language strings should be in the form of a constant
// The constants should be grouped by the top level package they are used in (or common)
// Include sprintf formatting directives in the string if needed
const (
	RootCmdShort         = "CLI for packaging extension projects"
	RootCmdLong          = "extpack validates an extension project, precompiles its localized metadata, and bundles everything into a single deployable archive."
	RootCmdFlagLogLevel  = "Log level when running extpack. Valid options are: warn, info, debug, error"
	RootCmdFlagLogFormat = "Log format when running extpack. Valid options are: console, json, dev, none"
	RootCmdFlagNoColor   = "Disable colors in output"
	RootCmdErrSetup      = "failed to set up command: %w"

	CmdCreateShort      = "Creates an extension archive from the given directory"
	CmdCreateLong       = "Validates the project's required files, links optional locale and autocomplete resources, runs the extension once per locale to precompile its metadata, and writes a deterministic archive."
	CmdCreateFlagOutput = "Specify the output (either a directory or file name) for the created archive"
	CmdCreateOverwrite  = "The archive %s already exists. Overwrite it?"
	CmdCreateErrCancel  = "archive creation canceled"
	CmdCreateSuccess    = "Archive created at %s"

	CmdInspectShort = "Lists the contents and precompiled metadata of an extension archive"
	CmdInspectLong  = "Reads an existing extension archive, prints each entry it contains, and renders the merged per-locale metadata stored inside it."

	CmdVersionShort = "Shows the version of the running extpack binary"
)
