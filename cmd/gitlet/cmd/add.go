// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Stage a file for the next commit",
	Long: `Stage a copy of a file as it currently exists for the next commit.

Staging a file whose content is the one of the current commit unstages it.
A file staged for removal is no longer staged for removal.
`,
	Args: operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			_, err := repo.Add(ctx, args[0])
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
