package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
)

// Build creates a root cobra command named name with one subcommand per
// registered command.
func Build(reg *Registry, name string) *cobra.Command {
	root := &cobra.Command{
		Use:               name,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	Attach(root, reg)
	return root
}

// Attach adds every registered command to root
func Attach(root *cobra.Command, reg *Registry) {
	for _, cmd := range reg.Commands() {
		root.AddCommand(NewCobraCommand(cmd))
	}
}

// NewCobraCommand converts a command into a cobra command. Positionals map
// to ordered arguments and options to pflag flags.
func NewCobraCommand(cmd *Command) *cobra.Command {
	c := &cobra.Command{
		Use:   useLine(cmd),
		Short: firstLine(cmd.Doc),
		Long:  cmd.Doc,
		Args:  argsValidator(cmd.Params),
		RunE: func(c *cobra.Command, args []string) error {
			values, err := convert(cmd.Params, c.Flags(), args)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cli")
			logger.Debug().
				Str("command", cmd.Name).
				Strs("args", args).
				Msg("Dispatching command")
			return cmd.Run(c.Context(), Args{values: values})
		},
	}

	flags := c.Flags()
	for _, p := range cmd.Params {
		if p.Kind != Option {
			continue
		}
		long, short := p.longFlag(), p.shortFlag()
		if p.IsSwitch() {
			flags.BoolP(long, short, false, p.Help)
			continue
		}
		def := ""
		if p.Default != nil {
			def = fmt.Sprint(p.Default)
		}
		flags.StringP(long, short, def, p.Help)
		if p.Required {
			// Fails only for an unregistered flag, which Validate rules out.
			if err := c.MarkFlagRequired(long); err != nil {
				panic(fmt.Sprintf("command %s: %v", cmd.Name, err))
			}
		}
	}

	if cmd.AfterHelp != "" {
		after := strings.TrimRight(cmd.AfterHelp, "\n")
		c.SetHelpFunc(func(cc *cobra.Command, _ []string) {
			out := cc.OutOrStdout()
			if desc := strings.TrimRight(cc.Long, " \n"); desc != "" {
				fmt.Fprintf(out, "%s\n\n", desc)
			} else if cc.Short != "" {
				fmt.Fprintf(out, "%s\n\n", cc.Short)
			}
			fmt.Fprint(out, cc.UsageString())
			fmt.Fprintf(out, "\n%s\n", after)
		})
	}
	return c
}

// Run builds the command tree for reg, parses args and invokes the selected
// command. Requests for help print it and return nil.
func Run(ctx context.Context, reg *Registry, name string, args []string, stdout, stderr io.Writer) error {
	return Execute(ctx, Build(reg, name), args, stdout, stderr)
}

// Execute runs an existing command tree. Errors that carry no code, which
// are cobra's parse and validation failures, are returned as ErrUsage.
func Execute(ctx context.Context, root *cobra.Command, args []string, stdout, stderr io.Writer) error {
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if errors.GetErrorCode(err) != errors.ErrUnknown {
		return err
	}
	return errors.Wrap(err, errors.ErrUsage, "invalid command line")
}

func useLine(cmd *Command) string {
	parts := []string{cmd.Name}
	for _, p := range cmd.Params {
		if p.Kind == Positional {
			parts = append(parts, p.usage())
		}
	}
	return strings.Join(parts, " ")
}

func firstLine(doc string) string {
	doc = strings.TrimSpace(doc)
	line, _, _ := strings.Cut(doc, "\n")
	return strings.TrimSpace(line)
}

func argsValidator(params []Param) cobra.PositionalArgs {
	required, total, variadic := 0, 0, false
	for _, p := range params {
		if p.Kind != Positional {
			continue
		}
		total++
		if p.Required {
			required++
		}
		if p.Variadic {
			variadic = true
		}
	}
	if variadic {
		return cobra.MinimumNArgs(required)
	}
	return cobra.RangeArgs(required, total)
}

func convert(params []Param, flags *pflag.FlagSet, args []string) (map[string]any, error) {
	values := make(map[string]any, len(params))
	pos := 0
	for _, p := range params {
		switch p.Kind {
		case Positional:
			if p.Variadic {
				list := make([]any, 0, len(args)-pos)
				for ; pos < len(args); pos++ {
					v, err := convertParam(p, args[pos])
					if err != nil {
						return nil, err
					}
					list = append(list, v)
				}
				if len(list) > 0 || p.Default == nil {
					values[p.Name] = list
				} else {
					values[p.Name] = p.Default
				}
				continue
			}
			if pos < len(args) {
				v, err := convertParam(p, args[pos])
				if err != nil {
					return nil, err
				}
				values[p.Name] = v
				pos++
			} else if p.Default != nil {
				values[p.Name] = p.Default
			}
		case Option:
			long := p.longFlag()
			if p.IsSwitch() {
				b, err := flags.GetBool(long)
				if err != nil {
					return nil, errors.Wrapf(err, errors.ErrInternal, "flag --%s", long)
				}
				values[p.Name] = b
				continue
			}
			flag := flags.Lookup(long)
			if flag != nil && flag.Changed {
				v, err := convertParam(p, flag.Value.String())
				if err != nil {
					return nil, err
				}
				values[p.Name] = v
			} else if p.Default != nil {
				values[p.Name] = p.Default
			}
		}
	}
	return values, nil
}

func convertParam(p Param, raw string) (any, error) {
	v, err := p.Type.Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParamConvert, "parameter %q", p.Name).
			WithDetail("param", p.Name)
	}
	return v, nil
}
