package main

import (
	"context"
	"os"

	"github.com/arthur-debert/turboterm/cmd/turboterm"
)

func main() {
	os.Exit(turboterm.Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
