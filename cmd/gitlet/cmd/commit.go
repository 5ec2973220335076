// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commitCmd represents the commit command
var commitCmd = &cobra.Command{
	Use:   "commit <message>",
	Short: "Create a commit with the currently staged files",
	Long: `Create a commit with the currently staged files.

The new commit tracks the files of the current commit, updated with the files staged for addition
and without the files staged for removal. The stage is cleared afterwards.
`,
	Aliases: []string{"ci"},
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return status.ErrEmptyMessage
		}
		return operands(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			c, err := repo.Commit(ctx, args[0])
			if err != nil {
				return err
			}
			repo.Logger().Info("committed", zap.String("id", c.ID))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
