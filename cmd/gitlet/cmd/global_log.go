// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"sort"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// globalLogCmd represents the global-log command
var globalLogCmd = &cobra.Command{
	Use:   "global-log",
	Short: "Get all the commits ever made",
	Long:  `Display all the commits of the repository, in no particular order.`,
	Args:  operands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			commits, err := repo.AllCommits(ctx).All()
			if err != nil {
				return err
			}
			sort.Slice(commits, func(i, j int) bool { return commits[i].ID < commits[j].ID })
			return printCommits(commits)
		})
	},
}

func init() {
	rootCmd.AddCommand(globalLogCmd)
	addFormatFlag(globalLogCmd, formatTable)
	addTemplateFlag(globalLogCmd)
}
