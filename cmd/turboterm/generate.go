package turboterm

import (
	"io"
	"strings"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/turboterm/internal/version"
	"github.com/arthur-debert/turboterm/pkg/errors"
)

// Shells supported by GenCompletion
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// GenManPage writes the section 1 man page for the whole command tree
func GenManPage(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "TURBOTERM",
		Section: "1",
		Source:  "turboterm " + version.Version,
		Manual:  "turboterm manual",
	}
	if err := doc.GenMan(NewRootCmd(), header, w); err != nil {
		return errors.Wrap(err, errors.ErrOutput, "failed to generate man page")
	}
	return nil
}

// GenCompletion writes the completion script for shell
func GenCompletion(shell string, w io.Writer) error {
	rootCmd := NewRootCmd()

	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown shell %q (supported: %s)",
			shell, strings.Join(Shells, ", ")).
			WithDetail("shell", shell)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrOutput, "failed to generate %s completion", shell)
	}
	return nil
}
