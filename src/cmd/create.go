// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/extpack-dev/extpack/src/config"
	"github.com/extpack-dev/extpack/src/config/lang"
	"github.com/extpack-dev/extpack/src/internal/packager"
)

var createOutput string

var createCmd = &cobra.Command{
	Use:   "create [DIRECTORY]",
	Args:  cobra.MaximumNArgs(1),
	Short: lang.CmdCreateShort,
	Long:  lang.CmdCreateLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		projectDir := "."
		if len(args) > 0 {
			projectDir = args[0]
		}

		dest, err := packager.Create(cmd.Context(), projectDir, createOutput, packager.CreateOptions{
			SkipConfirm: config.CommonOptions.Confirm,
		})
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString(lang.CmdCreateSuccess, dest))
		return nil
	},
}

func init() {
	initViper()
	rootCmd.AddCommand(createCmd)

	v.SetDefault(V_CREATE_OUTPUT, "")
	v.SetDefault(V_CREATE_CONFIRM, false)

	createCmd.Flags().StringVarP(&createOutput, "output", "o", v.GetString(V_CREATE_OUTPUT), lang.CmdCreateFlagOutput)
	createCmd.Flags().BoolVar(&config.CommonOptions.Confirm, "confirm", v.GetBool(V_CREATE_CONFIRM), "Skip the overwrite prompt and assume yes")
}
