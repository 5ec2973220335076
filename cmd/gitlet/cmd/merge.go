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

// mergeCmd represents the merge command
var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the current branch",
	Long: `Merge the files of a branch into the current branch.

When the branches diverged, files are reconciled against their latest common ancestor.
Files changed differently on both sides are written with both versions between conflict markers,
and the merge commit is created anyway.
`,
	Args: operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			res, err := repo.Merge(ctx, args[0])
			if err != nil {
				return err
			}
			return render(res, map[string]Formatter{
				formatText: mergeFormatter(),
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	addFormatFlag(mergeCmd)
}

func mergeFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		res := data.(engine.MergeResult)
		switch {
		case res.Outcome == engine.UpToDate:
			fmt.Fprintln(w, "Given branch is an ancestor of the current branch.")
		case res.Outcome == engine.FastForward:
			fmt.Fprintln(w, "Current branch fast-forwarded.")
		case res.Conflict:
			fmt.Fprintln(w, color.RedString("Encountered a merge conflict."))
		}
		return nil
	}
}
