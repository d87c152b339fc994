// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package cmd contains the CLI commands for extpack
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/extpack-dev/extpack/src/config/lang"
	"github.com/extpack-dev/extpack/src/pkg/logger"
)

var (
	logLevel  string
	logFormat string
	noColor   bool

	// Viper instance used by the cmd package
	v *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:           "extpack COMMAND",
	Short:         lang.RootCmdShort,
	Long:          lang.RootCmdLong,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := setupLogger(logLevel, logFormat, noColor)
		if err != nil {
			return fmt.Errorf(lang.RootCmdErrSetup, err)
		}
		cmd.SetContext(logger.WithContext(cmd.Context(), l))
		return nil
	},
}

// Execute runs the root command and exits non-zero on any fatal condition.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Default().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	initViper()

	v.SetDefault(V_LOG_LEVEL, "info")
	v.SetDefault(V_LOG_FORMAT, string(logger.FormatConsole))
	v.SetDefault(V_NO_COLOR, false)

	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", v.GetString(V_LOG_LEVEL), lang.RootCmdFlagLogLevel)
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", v.GetString(V_LOG_FORMAT), lang.RootCmdFlagLogFormat)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", v.GetBool(V_NO_COLOR), lang.RootCmdFlagNoColor)
}

// setupLogger builds the logger shared by every command and stores it as the
// package default.
func setupLogger(level, format string, noColor bool) (*slog.Logger, error) {
	lvl, err := logger.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := logger.Config{
		Level:       lvl,
		Format:      logger.Format(format),
		Destination: logger.DestinationDefault,
		Color:       logger.Color(!noColor),
	}
	l, err := logger.New(cfg)
	if err != nil {
		return nil, err
	}
	logger.SetDefault(l)
	return l, nil
}
