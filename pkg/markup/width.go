package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

const csi = "\x1b["

// StripEscapes removes every ESC[ ... m run from s. A run with no closing
// 'm' swallows the rest of the string.
func StripEscapes(s string) string {
	if !strings.Contains(s, csi) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, csi)
		if start < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		end := strings.IndexByte(s[start+len(csi):], 'm')
		if end < 0 {
			break
		}
		s = s[start+len(csi)+end+1:]
	}
	return b.String()
}

// VisibleWidth returns the number of scalars left in s once escape
// sequences are removed. Wide and combining characters count as one.
func VisibleWidth(s string) int {
	return utf8.RuneCountInString(StripEscapes(s))
}

// CellWidth returns the number of terminal cells s occupies, accounting for
// wide characters.
func CellWidth(s string) int {
	return lipgloss.Width(StripEscapes(s))
}
