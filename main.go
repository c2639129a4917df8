// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/mattn/go-isatty"

	"packfmt/repl"
)

func main() {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if interactive {
		currentUser, err := user.Current()
		if err != nil {
			fmt.Printf("Error getting current user: %v\n", err)
			return
		}
		fmt.Printf("Welcome to the packfmt REPL, %s!\n", currentUser.Username)
		fmt.Println("Type a pack format per line; \"exit\" quits.")
	}

	repl.Start(os.Stdin, os.Stdout, interactive)
}
