package turboterm

import (
	"embed"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/turboterm/pkg/cobrax/topics"
	"github.com/arthur-debert/turboterm/pkg/console"
)

//go:embed topics/*.md
var topicFiles embed.FS

// initTopics installs the help command serving the embedded topics.
// Markdown topics go through the console so they follow the color and
// markdown settings of the loaded configuration.
func (a *app) initTopics(rootCmd *cobra.Command) {
	renderer := topics.RendererFunc(func(content, format string) string {
		if format != ".md" {
			return content
		}
		c := a.console
		if c == nil {
			c = console.New(rootCmd.OutOrStdout())
		}
		return c.RenderMarkdown(content)
	})

	opts := topics.Options{Extensions: []string{".md"}, Renderer: renderer}
	if _, err := topics.InitializeWithOptions(rootCmd, topicFiles, opts); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}
}
