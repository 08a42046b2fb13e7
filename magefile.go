//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	"github.com/arthur-debert/turboterm/pkg/console"
)

const (
	binDir     = "bin"
	versionPkg = "github.com/arthur-debert/turboterm/internal/version"
)

var out = console.New(os.Stdout)

// Default target builds the binary
var Default = Build

// Build builds the turboterm binary into bin/
func Build() error {
	_ = out.Print("[bold]Building turboterm[/bold]")
	return sh.RunV("go", "build", "-ldflags", ldflags(),
		"-o", filepath.Join(binDir, "turboterm"), "./cmd/turboterm/main")
}

// Test runs the test suite
func Test() error {
	_ = out.Print("[bold]Running tests[/bold]")
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// QA runs vet and the tests
func QA() {
	mg.SerialDeps(Vet, Test)
	_ = out.Print("[green]QA passed[/green]")
}

// Man writes the man page to bin/turboterm.1
func Man() error {
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}
	page, err := sh.Output("go", "run", "./cmd/turboterm-manpage")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(binDir, "turboterm.1"), []byte(page+"\n"), 0644)
}

// Completions writes shell completion scripts to bin/completions/
func Completions() error {
	dir := filepath.Join(binDir, "completions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		script, err := sh.Output("go", "run", "./cmd/turboterm-completions", shell)
		if err != nil {
			return fmt.Errorf("%s completion: %w", shell, err)
		}
		path := filepath.Join(dir, "turboterm."+shell)
		if err := os.WriteFile(path, []byte(script+"\n"), 0644); err != nil {
			return err
		}
	}
	return nil
}

// Dist builds the binary, man page and completions
func Dist() {
	mg.Deps(Build, Man, Completions)
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binDir)
}

func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	date := time.Now().UTC().Format(time.RFC3339)

	flags := []string{
		"-X " + versionPkg + ".Version=" + version,
		"-X " + versionPkg + ".Commit=" + commit,
		"-X " + versionPkg + ".Date=" + date,
	}
	return strings.Join(flags, " ")
}
