// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/config/lang"
)

var versionOutputFormat string

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   lang.CmdVersionShort,
	RunE: func(_ *cobra.Command, _ []string) error {
		if versionOutputFormat == "" {
			fmt.Println(config.CLIVersion)
			return nil
		}

		output := map[string]interface{}{
			"version":   config.CLIVersion,
			"platform":  runtime.GOOS + "/" + runtime.GOARCH,
			"goVersion": runtime.Version(),
		}
		ver, err := semver.NewVersion(config.CLIVersion)
		if err != nil && !errors.Is(err, semver.ErrInvalidSemVer) {
			return fmt.Errorf("could not parse CLI version %s: %w", config.CLIVersion, err)
		}
		if ver != nil {
			output["major"] = ver.Major()
			output["minor"] = ver.Minor()
			output["patch"] = ver.Patch()
		}

		b, err := json.Marshal(output)
		if err != nil {
			return fmt.Errorf("could not marshal json output: %w", err)
		}
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	versionCmd.Flags().StringVarP(&versionOutputFormat, "output", "o", "", "Output format (json)")
	rootCmd.AddCommand(versionCmd)
}
