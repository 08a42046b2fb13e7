package markup

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Reset is the SGR sequence that clears every attribute and color.
const Reset = "\x1b[0m"

// SGR layers for extended colors
const (
	layerForeground = 38
	layerBackground = 48
)

// keywords maps static style names to their SGR sequences
var keywords = map[string]string{
	// Text attributes
	"b":             sgr(1),
	"bold":          sgr(1),
	"dim":           sgr(2),
	"i":             sgr(3),
	"italic":        sgr(3),
	"u":             sgr(4),
	"underline":     sgr(4),
	"blink":         sgr(5),
	"inverse":       sgr(7),
	"reverse":       sgr(7),
	"hidden":        sgr(8),
	"s":             sgr(9),
	"strike":        sgr(9),
	"strikethrough": sgr(9),
	"overline":      sgr(53),
}

// colorNames lists the eight base colors in SGR order
var colorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

func init() {
	for i, name := range colorNames {
		keywords[name] = sgr(30 + i)
		keywords["on_"+name] = sgr(40 + i)
		keywords["bright_"+name] = sgr(90 + i)
		keywords["on_bright_"+name] = sgr(100 + i)
	}
	for _, alias := range []string{"grey", "gray"} {
		keywords[alias] = sgr(90)
		keywords["on_"+alias] = sgr(100)
	}
}

func sgr(code int) string {
	return fmt.Sprintf("\x1b[%dm", code)
}

// Keywords returns the sorted list of static style names.
func Keywords() []string {
	names := make([]string, 0, len(keywords))
	for name := range keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve maps a single style token to its escape sequence.
//
// Static keywords are tried first, then color(N), on_color(N), rgb(R,G,B),
// on_rgb(R,G,B), on_#RRGGBB and #RRGGBB. The bool is false when the token
// is not recognized or its parameters are malformed.
func Resolve(token string) (string, bool) {
	if code, ok := keywords[token]; ok {
		return code, true
	}

	if inner, ok := call(token, "color("); ok {
		if n, ok := parseByte(inner); ok {
			return fmt.Sprintf("\x1b[%d;5;%dm", layerForeground, n), true
		}
	}

	if inner, ok := call(token, "on_color("); ok {
		if n, ok := parseByte(inner); ok {
			return fmt.Sprintf("\x1b[%d;5;%dm", layerBackground, n), true
		}
	}

	if inner, ok := call(token, "rgb("); ok {
		if code, ok := parseRGB(inner, layerForeground); ok {
			return code, true
		}
	}

	if inner, ok := call(token, "on_rgb("); ok {
		if code, ok := parseRGB(inner, layerBackground); ok {
			return code, true
		}
	}

	// on_# must be tried before # since both contain the hash
	if hex, ok := strings.CutPrefix(token, "on_#"); ok {
		if code, ok := parseHex(hex, layerBackground); ok {
			return code, true
		}
	}

	if hex, ok := strings.CutPrefix(token, "#"); ok {
		if code, ok := parseHex(hex, layerForeground); ok {
			return code, true
		}
	}

	return "", false
}

// ResolveCompound resolves every whitespace-separated token of a tag and
// concatenates the codes in order. A single unknown token fails the whole
// tag.
func ResolveCompound(tag string) (string, bool) {
	var codes strings.Builder
	for _, token := range strings.Fields(tag) {
		code, ok := Resolve(token)
		if !ok {
			return "", false
		}
		codes.WriteString(code)
	}
	return codes.String(), true
}

// call returns the argument text of a "name(...)" token.
func call(token, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(token, prefix)
	if !ok {
		return "", false
	}
	return strings.CutSuffix(rest, ")")
}

func parseByte(s string) (uint8, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(n), true
}

func parseRGB(inner string, layer int) (string, bool) {
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return "", false
	}
	var rgb [3]uint8
	for i, part := range parts {
		n, ok := parseByte(part)
		if !ok {
			return "", false
		}
		rgb[i] = n
	}
	return truecolor(layer, rgb), true
}

func parseHex(hex string, layer int) (string, bool) {
	if len(hex) != 6 {
		return "", false
	}
	var rgb [3]uint8
	for i := range rgb {
		n, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return "", false
		}
		rgb[i] = uint8(n)
	}
	return truecolor(layer, rgb), true
}

func truecolor(layer int, rgb [3]uint8) string {
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", layer, rgb[0], rgb[1], rgb[2])
}
