// Package console writes markup-styled text, tables, headings and markdown
// to a terminal, degrading to plain text when the destination cannot show
// color.
package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/arthur-debert/turboterm/pkg/config"
	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
	"github.com/arthur-debert/turboterm/pkg/markup"
	"github.com/arthur-debert/turboterm/pkg/table"
)

// Console renders to a single writer
type Console struct {
	w         io.Writer
	color     bool
	widthMode string
	mdStyle   string
	mdWidth   int
	title     lipgloss.Style
}

// Option configures a Console
type Option func(*Console)

// WithNoColor forces plain output on or off, overriding detection
func WithNoColor(noColor bool) Option {
	return func(c *Console) {
		c.color = !noColor
	}
}

// WithWidthMode selects how table cells are measured: config.WidthScalar
// counts code points, config.WidthCell counts terminal cells.
func WithWidthMode(mode string) Option {
	return func(c *Console) {
		c.widthMode = mode
	}
}

// WithMarkdownStyle sets the glamour style ("auto", "dark", "light",
// "notty" or a path) and the wrap width. Width 0 wraps at the terminal
// width, or at glamour's default when the writer is not a terminal.
func WithMarkdownStyle(style string, width int) Option {
	return func(c *Console) {
		c.mdStyle = style
		c.mdWidth = width
	}
}

// WithConfig applies the output section of a loaded configuration
func WithConfig(cfg *config.Config) Option {
	return func(c *Console) {
		if cfg == nil {
			return
		}
		if cfg.Output.NoColor {
			c.color = false
		}
		c.widthMode = cfg.Output.WidthMode
		c.mdStyle = cfg.Output.Markdown.Style
		c.mdWidth = cfg.Output.Markdown.Width
	}
}

// New creates a console writing to w. Color is detected from the writer
// unless an option forces it.
func New(w io.Writer, opts ...Option) *Console {
	c := &Console{
		w:         w,
		color:     DetectColor(w),
		widthMode: config.WidthScalar,
		mdStyle:   "auto",
	}
	for _, opt := range opts {
		opt(c)
	}

	renderer := lipgloss.NewRenderer(w)
	if c.color {
		if renderer.ColorProfile() == termenv.Ascii {
			renderer.SetColorProfile(termenv.ANSI)
		}
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	c.title = renderer.NewStyle().Bold(true)

	logger := logging.GetLogger("console")

	logger.Trace().
		Bool("color", c.color).
		Str("widthMode", c.widthMode).
		Msg("Console created")
	return c
}

// DetectColor reports whether w should receive escape sequences. NO_COLOR,
// a non-terminal file or an Ascii-only terminal all disable color.
func DetectColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return false
		}
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// TerminalWidth returns the column count of the terminal behind w, or 0
// when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// Color reports whether the console emits escape sequences
func (c *Console) Color() bool {
	return c.color
}

// Print writes styled text followed by a newline
func (c *Console) Print(text string) error {
	if c.color {
		return c.writeln(markup.Apply(text))
	}
	return c.writeln(markup.Strip(text))
}

// Printf formats according to format and prints the styled result
func (c *Console) Printf(format string, args ...any) error {
	return c.Print(fmt.Sprintf(format, args...))
}

// Table renders rows as a bordered table followed by a newline
func (c *Console) Table(rows [][]string) error {
	var opts []table.Option
	if c.widthMode == config.WidthCell {
		opts = append(opts, table.WithMeasure(markup.CellWidth))
	}
	rendered := table.New(opts...).AddRows(rows).Render()
	if !c.color {
		rendered = markup.StripEscapes(rendered)
	}
	return c.writeln(rendered)
}

// Title writes a bold heading
func (c *Console) Title(text string) error {
	return c.writeln(c.title.Render(text))
}

// Markdown renders markdown source. If glamour cannot render it the source
// is written unchanged.
func (c *Console) Markdown(source string) error {
	return c.write(c.RenderMarkdown(source))
}

// RenderMarkdown returns source rendered with glamour, or source itself
// when rendering fails.
func (c *Console) RenderMarkdown(source string) string {
	log := logging.GetLogger("console")

	renderer, err := glamour.NewTermRenderer(c.markdownOptions()...)
	if err != nil {
		log.Debug().Err(err).Msg("Markdown renderer unavailable, using source")
		return source
	}
	rendered, err := renderer.Render(source)
	if err != nil {
		log.Debug().Err(err).Msg("Markdown render failed, using source")
		return source
	}
	return rendered
}

func (c *Console) markdownOptions() []glamour.TermRendererOption {
	var options []glamour.TermRendererOption
	switch {
	case !c.color:
		options = append(options,
			glamour.WithStandardStyle("notty"),
			glamour.WithColorProfile(termenv.Ascii))
	case c.mdStyle == "" || c.mdStyle == "auto":
		options = append(options, glamour.WithAutoStyle())
	default:
		options = append(options, glamour.WithStylePath(c.mdStyle))
	}
	width := c.mdWidth
	if width <= 0 {
		width = TerminalWidth(c.w)
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}
	return options
}

func (c *Console) writeln(s string) error {
	return c.write(s + "\n")
}

func (c *Console) write(s string) error {
	if _, err := io.WriteString(c.w, s); err != nil {
		return errors.Wrap(err, errors.ErrOutput, "failed to write output")
	}
	return nil
}
