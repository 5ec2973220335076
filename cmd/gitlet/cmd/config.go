// Copyright © 2018 One Concern

package cmd

import (
	"github.com/spf13/cobra"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the config of gitlet",
	Long:  `The namespace for managing config settings of gitlet`,
}

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the config used",
	Long:  `Print the config used by the invocation of the gitlet command`,
	Args:  operands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if gitletFlags.output.format == formatText {
			gitletFlags.output.format = formatYAML
		}
		return render(cfg, nil)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(dumpCmd)
	addFormatFlag(dumpCmd)
}
