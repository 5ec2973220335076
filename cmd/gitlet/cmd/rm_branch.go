// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// rmBranchCmd represents the rm-branch command
var rmBranchCmd = &cobra.Command{
	Use:   "rm-branch <name>",
	Short: "Delete a branch",
	Long:  `Delete a branch. The commits it points to are left untouched.`,
	Args:  operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			return repo.RemoveBranch(ctx, args[0])
		})
	},
}

func init() {
	rootCmd.AddCommand(rmBranchCmd)
}
