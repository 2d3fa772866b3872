package main

import (
	"fmt"
	"os"

	"github.com/bhdao/bhdao/launch/cmds"
)

var Version = "v0.0.1"

func main() {
	if err := cmds.Run(os.Args[1:], Version, os.Stdout); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %+v\n", err)

		os.Exit(1)
	}

	os.Exit(0)
}
