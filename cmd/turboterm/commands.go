package turboterm

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/turboterm/pkg/cli"
	"github.com/arthur-debert/turboterm/pkg/config"
	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
	"github.com/arthur-debert/turboterm/pkg/markup"
)

// commands registers every turboterm subcommand
func (a *app) commands() *cli.Registry {
	reg := cli.NewRegistry()

	reg.MustRegister(&cli.Command{
		Name:      "style",
		Doc:       MsgStyleLong,
		AfterHelp: MsgStyleAfter,
		Params: []cli.Param{
			{Name: "text", Kind: cli.Positional, Required: true, Variadic: true, Help: MsgParamText},
			{Name: "strip", Kind: cli.Option, Flags: []string{"--strip", "-s"}, Type: cli.Bool, Help: MsgFlagStrip},
		},
		Run: a.runStyle,
	})

	reg.MustRegister(&cli.Command{
		Name:      "table",
		Doc:       MsgTableLong,
		AfterHelp: MsgTableAfter,
		Params: []cli.Param{
			{Name: "file", Kind: cli.Positional, Help: MsgParamFile},
			{Name: "format", Kind: cli.Option, Flags: []string{"--format", "-f"}, Help: MsgFlagFormat},
		},
		Run: a.runTable,
	})

	reg.MustRegister(&cli.Command{
		Name:      "markdown",
		Doc:       MsgMarkdownDoc,
		AfterHelp: MsgMarkdownAfter,
		Params: []cli.Param{
			{Name: "file", Kind: cli.Positional, Required: true, Help: MsgParamMarkdown},
		},
		Run: a.runMarkdown,
	})

	reg.MustRegister(&cli.Command{
		Name:      "width",
		Doc:       MsgWidthDoc,
		AfterHelp: MsgWidthAfter,
		Params: []cli.Param{
			{Name: "text", Kind: cli.Positional, Required: true, Variadic: true, Help: MsgParamText},
		},
		Run: a.runWidth,
	})

	reg.MustRegister(&cli.Command{
		Name:      "config",
		Doc:       MsgConfigDoc,
		AfterHelp: MsgConfigAfter,
		Params: []cli.Param{
			{Name: "defaults", Kind: cli.Option, Flags: []string{"--defaults"}, Type: cli.Bool, Help: MsgFlagDefaults},
		},
		Run: a.runConfig,
	})

	return reg
}

func (a *app) runStyle(_ context.Context, args cli.Args) error {
	text := strings.Join(args.Strings("text"), " ")
	if args.Bool("strip") {
		return a.println(markup.Strip(text))
	}
	return a.console.Print(text)
}

func (a *app) runTable(_ context.Context, args cli.Args) error {
	log := logging.GetLogger("table")
	path := args.String("file")

	format, err := rowsFormat(path, args.String("format"))
	if err != nil {
		return err
	}
	data, err := a.readInput(path)
	if err != nil {
		return err
	}
	rows, err := parseRows(data, format)
	if err != nil {
		return err
	}

	log.Debug().Str("format", format).Int("rows", len(rows)).Msg("Rendering table")
	return a.console.Table(rows)
}

func (a *app) runMarkdown(_ context.Context, args cli.Args) error {
	done := logging.LogOperationStart(logging.GetLogger("markdown"), "render")
	defer done()

	data, err := a.readInput(args.String("file"))
	if err != nil {
		return err
	}
	return a.console.Markdown(string(data))
}

func (a *app) runWidth(_ context.Context, args cli.Args) error {
	styled := markup.Apply(strings.Join(args.Strings("text"), " "))
	measure := markup.VisibleWidth
	if a.cfg.Output.WidthMode == config.WidthCell {
		measure = markup.CellWidth
	}
	return a.println(fmt.Sprint(measure(styled)))
}

func (a *app) runConfig(_ context.Context, args cli.Args) error {
	if args.Bool("defaults") {
		return a.println(strings.TrimRight(config.DefaultContent(), "\n"))
	}
	dump, err := config.Dump(a.cfg)
	if err != nil {
		return err
	}
	return a.println(strings.TrimRight(dump, "\n"))
}

// readInput reads a file, or standard input for "" and "-"
func (a *app) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileRead, MsgErrReadFile, "standard input")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, MsgErrReadFile, path).
			WithDetail("path", path)
	}
	return data, nil
}

func (a *app) println(s string) error {
	if _, err := fmt.Fprintln(a.out, s); err != nil {
		return errors.Wrap(err, errors.ErrOutput, "failed to write output")
	}
	return nil
}
