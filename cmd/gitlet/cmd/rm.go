// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// rmCmd represents the rm command
var rmCmd = &cobra.Command{
	Use:   "rm <file>",
	Short: "Unstage a file, or stage it for removal",
	Long: `Unstage a file staged for addition.

A file tracked by the current commit is staged for removal and deleted from the working directory.
`,
	Args: operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			return repo.Remove(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
