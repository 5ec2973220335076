// Copyright © 2018 One Concern

package cmd

import (
	"context"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/spf13/cobra"
)

type checkoutArgs struct {
	commit string
	file   string
	branch string
}

// parseCheckoutArgs recognizes the three forms of checkout:
//
//	checkout -- <file>
//	checkout <commit id> -- <file>
//	checkout <branch>
//
// Flag parsing is disabled for checkout, so the separator is part of args.
func parseCheckoutArgs(args []string) (checkoutArgs, error) {
	switch {
	case len(args) == 2 && args[0] == "--":
		return checkoutArgs{file: args[1]}, nil
	case len(args) == 3 && args[1] == "--":
		return checkoutArgs{commit: args[0], file: args[2]}, nil
	case len(args) == 1 && args[0] != "--":
		return checkoutArgs{branch: args[0]}, nil
	default:
		return checkoutArgs{}, status.ErrIncorrectOperands
	}
}

// checkoutCmd represents the checkout command
var checkoutCmd = &cobra.Command{
	Use:   "checkout [<commit id>] -- <file> | <branch>",
	Short: "Restore a file, or switch to a branch",
	Long: `Restore a file, or switch to a branch.

  checkout -- <file>               restores a file as tracked by the current commit
  checkout <commit id> -- <file>   restores a file as tracked by a commit, abbreviated ids are accepted
  checkout <branch>                replaces the working files with the ones of a branch, and makes it the current branch

Restored files are not staged. Switching branches clears the stage, and refuses to overwrite untracked files.
`,
	Aliases:            []string{"co"},
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ca, err := parseCheckoutArgs(args)
		if err != nil {
			return err
		}
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			if ca.branch != "" {
				return repo.CheckoutBranch(ctx, ca.branch)
			}
			return repo.CheckoutFile(ctx, ca.commit, ca.file)
		})
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
}
