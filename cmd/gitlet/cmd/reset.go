// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset <commit id>",
	Short: "Move the current branch to a commit",
	Long: `Check out all the files tracked by a commit, and move the current branch to it.

Files tracked by the current commit but not by the given one are deleted. The stage is cleared.
Abbreviated ids are accepted.
`,
	Args: operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			c, err := repo.Reset(ctx, args[0])
			if err != nil {
				return err
			}
			repo.Logger().Info("reset", zap.String("id", c.ID))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
