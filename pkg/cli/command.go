package cli

import (
	"context"
	"fmt"

	"github.com/arthur-debert/turboterm/pkg/errors"
)

// RunFunc handles an invocation with converted arguments
type RunFunc func(ctx context.Context, args Args) error

// Command is a named handler plus its parameter metadata
type Command struct {
	Name      string
	Doc       string
	AfterHelp string
	Params    []Param
	Run       RunFunc
}

// Validate checks that the command can be turned into a cobra command
func (c *Command) Validate() error {
	if c.Name == "" {
		return errors.New(errors.ErrCommandInvalid, "command name cannot be empty")
	}
	if c.Run == nil {
		return c.invalid("has no run function")
	}

	names := make(map[string]bool, len(c.Params))
	flags := make(map[string]bool)
	optionalSeen := false
	for i, p := range c.Params {
		if p.Name == "" {
			return c.invalid("parameter %d has no name", i)
		}
		if names[p.Name] {
			return c.invalid("duplicate parameter %q", p.Name)
		}
		names[p.Name] = true

		switch p.Kind {
		case Positional:
			if len(p.Flags) > 0 {
				return c.invalid("positional %q cannot declare flags", p.Name)
			}
			if p.Required && optionalSeen {
				return c.invalid("required positional %q follows an optional one", p.Name)
			}
			if !p.Required {
				optionalSeen = true
			}
			if p.Variadic && i != lastPositional(c.Params) {
				return c.invalid("variadic positional %q must be the last positional", p.Name)
			}
		case Option:
			if len(p.Flags) == 0 {
				return c.invalid("option %q needs at least one flag", p.Name)
			}
			if p.Variadic {
				return c.invalid("option %q cannot be variadic", p.Name)
			}
			for _, flag := range p.Flags {
				if !validFlag(flag) {
					return c.invalid("option %q has malformed flag %q", p.Name, flag)
				}
			}
			for _, flag := range []string{"--" + p.longFlag(), "-" + p.shortFlag()} {
				if flag == "-" {
					continue
				}
				if flags[flag] || flag == "--help" || flag == "-h" {
					return c.invalid("flag %s of %q is already taken", flag, p.Name)
				}
				flags[flag] = true
			}
		default:
			return c.invalid("parameter %q has unknown kind %d", p.Name, int(p.Kind))
		}
	}
	return nil
}

func (c *Command) invalid(format string, args ...any) error {
	return errors.Newf(errors.ErrCommandInvalid, "command %q: %s", c.Name, fmt.Sprintf(format, args...)).
		WithDetail("command", c.Name)
}

func lastPositional(params []Param) int {
	last := -1
	for i, p := range params {
		if p.Kind == Positional {
			last = i
		}
	}
	return last
}

// Args holds converted parameter values by name. Parameters without a
// value and without a default are absent.
type Args struct {
	values map[string]any
}

// NewArgs wraps a value map, mostly for calling handlers in tests
func NewArgs(values map[string]any) Args {
	return Args{values: values}
}

// Get returns the raw value of a parameter
func (a Args) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether a parameter has a value
func (a Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// String returns a string parameter, or "" when absent
func (a Args) String(name string) string {
	v, ok := a.values[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns an int parameter, or 0 when absent
func (a Args) Int(name string) int {
	n, _ := a.values[name].(int)
	return n
}

// Float returns a float parameter, or 0 when absent
func (a Args) Float(name string) float64 {
	switch v := a.values[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns a boolean parameter, or false when absent
func (a Args) Bool(name string) bool {
	b, _ := a.values[name].(bool)
	return b
}

// List returns the values of a variadic parameter
func (a Args) List(name string) []any {
	list, _ := a.values[name].([]any)
	return list
}

// Strings returns the values of a variadic parameter as strings
func (a Args) Strings(name string) []string {
	list := a.List(name)
	out := make([]string, len(list))
	for i, v := range list {
		out[i] = fmt.Sprint(v)
	}
	return out
}
