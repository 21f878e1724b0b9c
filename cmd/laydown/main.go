package main

import (
	"fmt"
	"os"

	"github.com/idilsaglam/laydown/internal/cli"
)

func main() {
	// Flags are parsed by the runner's command tree.
	code := cli.Run(os.Args[1:], cli.Options{})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
