// Copyright © 2018 One Concern

package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/oneconcern/gitlet/pkg/engine"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitlet",
	Short: "Gitlet is a small version control system",
	Long: `Gitlet versions the files of a directory.

It records snapshots of the working directory as commits, organizes them in a history graph
with branches, and merges diverging branches with whole-file conflict detection.

Gitlet works by providing a git like interface on a local repository stored in .gitlet.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return status.ErrNoSuchCommand
		}
		return status.ErrNoCommand
	},
	Args: cobra.ArbitraryArgs,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		handleError(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	registerRootFlags(rootCmd.PersistentFlags())

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, _ error) error {
		return status.ErrIncorrectOperands
	})
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	def := engine.DefaultConfig()
	viper.SetDefault("repo_dir", def.RepoDir)
	viper.SetDefault("log_level", def.LogLevel)
	viper.SetDefault("hash.leaf_size", def.Hash.LeafSize)
	viper.SetDefault("index.value_log_size", def.Index.ValueLogSize)
	viper.SetDefault("color", def.Color)

	if os.Getenv("GITLET_CONFIG") != "" {
		// Use config file from the env.
		viper.SetConfigFile(os.Getenv("GITLET_CONFIG"))
	} else {
		viper.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".gitlet"))
		}
		viper.SetConfigName(".gitlet")
	}

	viper.SetEnvPrefix("gitlet")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			configErr = err
		}
	}

	if gitletFlags.root.noColor || !viper.GetBool("color") {
		color.NoColor = true
	}
}
