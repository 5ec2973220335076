// Copyright © 2018 One Concern

package cmd

import (
	"strings"

	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagsT struct {
	root struct {
		logLevel string
		noColor  bool
	}
	output struct {
		format   string
		template string
	}
}

var gitletFlags flagsT

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// registerRootFlags adds the flags shared by all commands
func registerRootFlags(fls *pflag.FlagSet) {
	fls.StringVar(&gitletFlags.root.logLevel, "loglevel", "", "the log level: debug, info, warn, error or none")
	fls.BoolVar(&gitletFlags.root.noColor, "no-color", false, "disable colored output")
	_ = viper.BindPFlag("log_level", fls.Lookup("loglevel"))
}

func addFormatFlag(cmd *cobra.Command, extra ...string) {
	formats := append(append([]string{formatText}, extra...), formatJSON, formatYAML)
	cmd.Flags().StringVarP(&gitletFlags.output.format, "format", "o", formatText,
		"the output format, one of: "+strings.Join(formats, ", "))
}

func addTemplateFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gitletFlags.output.template, "template", "",
		"a go template applied to each commit, e.g. '{{.ID}} {{.Message}}'")
}

// operands checks the number of positional arguments
func operands(n int) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return status.ErrIncorrectOperands
		}
		return nil
	}
}
