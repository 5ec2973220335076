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

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get the status of the repository",
	Long: `Display the branches, the files staged for addition or removal,
the changes not staged for commit and the untracked files.
`,
	Aliases: []string{"st"},
	Args:    operands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			st, err := repo.Status(ctx)
			if err != nil {
				return err
			}
			return render(st, map[string]Formatter{
				formatText: statusFormatter(),
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	addFormatFlag(statusCmd)
}

func statusFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		st := data.(engine.RepoStatus)

		fmt.Fprintln(w, "=== Branches ===")
		for _, b := range st.Branches {
			if b == st.Current {
				fmt.Fprintln(w, color.GreenString("*%s", b))
				continue
			}
			fmt.Fprintln(w, b)
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "=== Staged Files ===")
		for _, p := range st.Staged {
			fmt.Fprintln(w, color.GreenString("%s", p))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "=== Removed Files ===")
		for _, p := range st.Removed {
			fmt.Fprintln(w, color.RedString("%s", p))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "=== Modifications Not Staged For Commit ===")
		for _, m := range st.Modified {
			fmt.Fprintln(w, color.RedString("%s (%s)", m.Path, m.State))
		}
		fmt.Fprintln(w)

		fmt.Fprintln(w, "=== Untracked Files ===")
		for _, p := range st.Untracked {
			fmt.Fprintln(w, color.RedString("%s", p))
		}
		fmt.Fprintln(w)
		return nil
	}
}
