// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find <message>",
	Short: "Find the commits with a given message",
	Long:  `Print the ids of all the commits with exactly the given message, one per line.`,
	Args:  operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			ids, err := repo.Find(ctx, args[0])
			if err != nil {
				return err
			}
			return render(ids, map[string]Formatter{
				formatText: FormatterFunc(func(w io.Writer, data interface{}) error {
					for _, id := range data.([]string) {
						fmt.Fprintln(w, id)
					}
					return nil
				}),
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	addFormatFlag(findCmd)
}
