package main

import (
	"context"
	"fmt"
	"os"

	"jobly-relay/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.Describe(err))
		os.Exit(cli.ExitCode(err))
	}
}
