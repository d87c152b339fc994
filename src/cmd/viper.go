// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package cmd contains the CLI commands for extpack.
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/extpack-dev/extpack/src/pkg/logger"
)

const (
	// Root config keys
	V_LOG_LEVEL  = "log_level"
	V_LOG_FORMAT = "log_format"
	V_NO_COLOR   = "no_color"

	// Create config keys
	V_CREATE_OUTPUT  = "create.output"
	V_CREATE_CONFIRM = "create.confirm"
)

func initViper() {
	// Already initialized by some other command
	if v != nil {
		return
	}

	v = viper.New()

	// Specify an alternate config file
	cfgFile := os.Getenv("EXTPACK_CONFIG")

	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Search config paths in the current directory and $HOME/.extpack.
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.extpack")
		v.SetConfigName("extpack-config")
	}

	// E.g. EXTPACK_LOG_LEVEL=debug
	v.SetEnvPrefix("extpack")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional, so a not-found error is ignored
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Default().Error("failed to load config file", "error", err)
		}
	}
}
