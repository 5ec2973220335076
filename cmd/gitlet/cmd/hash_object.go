// Copyright © 2018 One Concern

package cmd

import (
	"context"
	"fmt"

	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/spf13/cobra"
)

// hashObjectCmd represents the hash-object command
var hashObjectCmd = &cobra.Command{
	Use:   "hash-object <file>",
	Short: "Compute the blob hash of a file",
	Long:  `Compute the hash a file would be stored with, without storing or staging it.`,
	Args:  operands(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithRepo(func(ctx context.Context, repo *engine.Repo) error {
			hash, err := repo.HashObject(ctx, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(stdout, hash)
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(hashObjectCmd)
}
