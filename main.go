// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package main is the entrypoint for the extpack binary.
package main

import (
	"github.com/extpack-dev/extpack/src/cmd"
)

func main() {
	cmd.Execute()
}
