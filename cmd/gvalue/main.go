// Command gvalue inspects graph query runtime values.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/gvalue/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
