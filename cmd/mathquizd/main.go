package main

import (
	"os"

	"mathquiz/internal/cli"
)

// mathquizd is the standalone daemon entry point; it is the serve
// subcommand under its own name.
func main() {
	os.Exit(cli.Run(append([]string{"serve"}, os.Args[1:]...), os.Stdout, os.Stderr))
}
