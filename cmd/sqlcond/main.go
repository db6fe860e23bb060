// Command sqlcond builds, compiles and runs SQL conditions.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/sqlcond/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands print their own errors except for flag and argument
		// validation, which cobra leaves to the caller.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
