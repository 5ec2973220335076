// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// branchCmd represents the branch command
var branchCmd = &cobra.Command{
	Use:   "branch [<name>]",
	Short: "Create a branch, or list the branches",
	Long: `Create a branch pointing to the current commit, without switching to it.

Without a name, list the known branches and mark the current one.
`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return nil
		}
		return operands(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			if len(args) == 1 {
				return repo.CreateBranch(ctx, args[0])
			}

			names, err := repo.Branches(ctx)
			if err != nil {
				return err
			}
			current, err := repo.CurrentBranch(ctx)
			if err != nil {
				return err
			}
			return render(branchListResult{Names: names, Active: current}, map[string]Formatter{
				formatText: branchListFormatter(),
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(branchCmd)
	addFormatFlag(branchCmd)
}

type branchListResult struct {
	Names  []string `json:"names" yaml:"names"`
	Active string   `json:"active" yaml:"active"`
}

func branchListFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		val := data.(branchListResult)
		for _, v := range val.Names {
			if v != val.Active {
				fmt.Fprintln(w, " ", v)
			} else {
				fmt.Fprintln(w, color.YellowString("*"), v)
			}
		}
		return nil
	}
}
