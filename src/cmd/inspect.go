// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/extpack-dev/extpack/src/config/lang"
	"github.com/extpack-dev/extpack/src/internal/packager"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect ARCHIVE",
	Args:  cobra.ExactArgs(1),
	Short: lang.CmdInspectShort,
	Long:  lang.CmdInspectLong,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := packager.Inspect(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(color.CyanString("Contents of %s:", args[0]))
		for _, e := range result.Entries {
			if e.IsDir {
				continue
			}
			fmt.Printf("  %8d  %s\n", e.Size, e.Name)
		}

		b, err := json.MarshalIndent(result.Metadata, "", "  ")
		if err != nil {
			return fmt.Errorf("unable to render metadata: %w", err)
		}
		fmt.Println(color.CyanString("Precompiled metadata:"))
		fmt.Println(string(b))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
