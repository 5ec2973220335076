// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/oneconcern/gitlet/pkg/model"
	"github.com/spf13/cobra"
)

const dateLayout = "Mon Jan 2 15:04:05 2006 -0700"

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Get the history of the current branch",
	Long: `Display the commits of the current branch, from the most recent one back to the initial commit.

Only the first parent of merge commits is followed.
`,
	Args: operands(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			commits, err := repo.Log(ctx).All()
			if err != nil {
				return err
			}
			return printCommits(commits)
		})
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	addFormatFlag(logCmd, formatTable)
	addTemplateFlag(logCmd)
}

func printCommits(commits []*model.Commit) error {
	t, err := commitTemplate()
	if err != nil {
		return err
	}
	if t != nil {
		for _, c := range commits {
			if err := executeTemplate(stdout, t, c); err != nil {
				return err
			}
		}
		return nil
	}
	if commits == nil {
		commits = []*model.Commit{}
	}
	return render(commits, map[string]Formatter{
		formatText:  commitsFormatter(),
		formatTable: commitsTableFormatter(),
	})
}

func commitsFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		for _, c := range data.([]*model.Commit) {
			fmt.Fprintln(w, "===")
			fmt.Fprintln(w, color.YellowString("commit %s", c.ID))
			if c.IsMerge() {
				fmt.Fprintln(w, "Merge:", model.ShortID(c.Parents[0]), model.ShortID(c.Parents[1]))
			}
			fmt.Fprintln(w, "Date:", c.Timestamp.Local().Format(dateLayout))
			fmt.Fprintln(w, c.Message)
			fmt.Fprintln(w)
		}
		return nil
	}
}

func commitsTableFormatter() FormatterFunc {
	return func(w io.Writer, data interface{}) error {
		table := uitable.New()
		table.MaxColWidth = 72
		table.AddRow("COMMIT", "DATE", "MESSAGE")
		for _, c := range data.([]*model.Commit) {
			table.AddRow(color.YellowString("%s", c.ShortID()), c.Timestamp.Local().Format(dateLayout), firstLine(c.Message))
		}
		_, err := fmt.Fprintln(w, table)
		return err
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
