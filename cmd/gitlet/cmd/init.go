// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new repository in the current directory",
	Long: `Create a new repository in the current directory.

The repository starts with a single commit, with the message "initial commit" and no file,
and a master branch pointing to it. All repositories share this initial commit.
`,
	Args: operands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := repoOptions()
		if err != nil {
			return err
		}
		defer func() {
			_ = opts.Logger.Sync()
		}()

		repo, err := engine.Init(context.Background(), opts)
		if err != nil {
			return err
		}
		return repo.Close()
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
