package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/turboterm/cmd/turboterm"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <%s>\n", os.Args[0], strings.Join(turboterm.Shells, "|"))
		os.Exit(1)
	}

	if err := turboterm.GenCompletion(os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
