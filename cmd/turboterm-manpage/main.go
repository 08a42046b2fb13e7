package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/turboterm/cmd/turboterm"
)

func main() {
	if err := turboterm.GenManPage(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
