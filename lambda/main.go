// Package main is the AWS Lambda bootstrap: it always runs the lambda sub-command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Atlas-Rhythm/forwardhook/cmd"
)

func main() {
	root := cmd.New()
	root.SetArgs(append([]string{"lambda"}, os.Args[1:]...))
	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
