// Copyright © 2018 One Concern

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/oneconcern/gitlet/pkg/engine/status"
	"github.com/oneconcern/gitlet/pkg/errors"
)

var (
	// globals used to patch over calls to os.Exit() during test
	osExit = os.Exit

	// outputs of the commands, replaced during test
	stdout io.Writer = color.Output
	stderr io.Writer = color.Error

	// configErr is the failure to read a config file, reported when a command needs the config
	configErr error
)

// handleError reports the failure of a command.
//
// Expected user errors print their message and exit with 0, any other failure exits with 1.
func handleError(err error) {
	if err == nil {
		return
	}
	if status.IsUserError(err) {
		_, _ = fmt.Fprintln(stdout, userMessage(err))
		return
	}
	_, _ = fmt.Fprintln(stderr, color.RedString("fatal:"), err)
	osExit(1)
}

func userMessage(err error) string {
	var e *errors.Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return err.Error()
}
