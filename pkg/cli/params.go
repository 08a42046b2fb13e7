package cli

import (
	"strconv"
	"strings"

	"github.com/arthur-debert/turboterm/pkg/errors"
)

// ParamKind tells positional arguments from options
type ParamKind int

const (
	// Positional parameters are matched by position
	Positional ParamKind = iota
	// Option parameters are matched by flag name
	Option
)

// String returns the string representation of the kind
func (k ParamKind) String() string {
	switch k {
	case Positional:
		return "positional"
	case Option:
		return "option"
	default:
		return "unknown"
	}
}

// Type is the closed set of value types a parameter converts to
type Type int

const (
	// String values are passed through unchanged
	String Type = iota
	// Int values parse as base 10 integers
	Int
	// Float values parse as 64-bit floats
	Float
	// Bool values parse with strconv.ParseBool
	Bool
)

// String returns the string representation of the type
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	default:
		return "unknown"
	}
}

// Parse converts a raw command line value. Surrounding whitespace is
// ignored for numbers and booleans.
func (t Type) Parse(value string) (any, error) {
	var (
		v   any
		err error
	)
	switch t {
	case String:
		return value, nil
	case Int:
		var n int64
		n, err = strconv.ParseInt(strings.TrimSpace(value), 10, 0)
		v = int(n)
	case Float:
		v, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	case Bool:
		v, err = strconv.ParseBool(strings.TrimSpace(value))
	default:
		return nil, errors.Newf(errors.ErrInternal, "unknown parameter type %d", int(t))
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrParamConvert, "invalid %s value %q", t, value).
			WithDetail("value", value).
			WithDetail("type", t.String())
	}
	return v, nil
}

// Param describes one command parameter.
//
// An Option of Type Bool is a switch: it takes no value, defaults to false
// and is never required. Flags lists the "--long" and "-s" spellings of an
// Option. Variadic is only valid on the last positional and collects every
// remaining argument into a list.
type Param struct {
	Name     string
	Kind     ParamKind
	Flags    []string
	Help     string
	Type     Type
	Default  any
	Required bool
	Variadic bool
}

// IsSwitch reports whether the parameter is a boolean option
func (p Param) IsSwitch() bool {
	return p.Kind == Option && p.Type == Bool
}

// longFlag returns the long flag name without dashes. Options declared
// with only a short flag use the parameter name.
func (p Param) longFlag() string {
	for _, flag := range p.Flags {
		if long, ok := strings.CutPrefix(flag, "--"); ok && long != "" {
			return long
		}
	}
	return strings.ReplaceAll(p.Name, "_", "-")
}

// shortFlag returns the one-letter shorthand, or "" when none is declared
func (p Param) shortFlag() string {
	for _, flag := range p.Flags {
		if len(flag) == 2 && flag[0] == '-' && flag[1] != '-' {
			return flag[1:]
		}
	}
	return ""
}

// usage renders the positional as it appears in the Use line
func (p Param) usage() string {
	name := strings.ToUpper(p.Name)
	if p.Variadic {
		name += "..."
	}
	if !p.Required {
		name = "[" + name + "]"
	}
	return name
}

func validFlag(flag string) bool {
	if long, ok := strings.CutPrefix(flag, "--"); ok {
		return long != "" && !strings.ContainsAny(long, " =")
	}
	return len(flag) == 2 && flag[0] == '-' && flag[1] != '-'
}
