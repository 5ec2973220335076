// Copyright © 2018 One Concern

package main

import "github.com/oneconcern/gitlet/cmd/gitlet/cmd"

func main() {
	cmd.Execute()
}
