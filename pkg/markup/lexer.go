package markup

import (
	"strings"
	"unicode"
)

// lexer holds the state of a single Apply pass.
type lexer struct {
	out   strings.Builder
	stack []string
	inTag bool
	tag   strings.Builder
}

// Apply converts style markup in text into ANSI escape sequences.
//
// It never fails: a tag that cannot be resolved is copied to the output as
// written, and a tag left unterminated at the end of text is dropped.
func Apply(text string) string {
	l := &lexer{}
	l.out.Grow(len(text))

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case l.inTag && r == ']':
			l.endTag()
		case l.inTag:
			l.tag.WriteRune(r)
		case r == '[' && i+1 < len(runes) && opensTag(runes[i+1]):
			l.inTag = true
			l.tag.Reset()
		default:
			l.out.WriteRune(r)
		}
	}

	l.finish()
	return l.out.String()
}

// Strip applies the markup and removes the resulting escape sequences,
// leaving the text a monochrome terminal should show.
func Strip(text string) string {
	return StripEscapes(Apply(text))
}

// opensTag reports whether next may start a tag: any alphabetic scalar,
// '/' or '#'.
func opensTag(next rune) bool {
	return isAlphabetic(next) || next == '/' || next == '#'
}

func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.In(r, unicode.Nl, unicode.Other_Alphabetic)
}

func (l *lexer) endTag() {
	l.inTag = false
	content := l.tag.String()
	l.tag.Reset()

	if name, ok := strings.CutPrefix(content, "/"); ok {
		l.close(name)
		return
	}
	l.open(content)
}

func (l *lexer) open(tag string) {
	codes, ok := ResolveCompound(tag)
	if !ok {
		l.literal(tag)
		return
	}
	l.stack = append(l.stack, tag)
	l.out.WriteString(codes)
}

func (l *lexer) close(name string) {
	depth := -1
	for i := len(l.stack) - 1; i >= 0; i-- {
		if l.stack[i] == name {
			depth = i
			break
		}
	}
	if depth < 0 {
		l.literal("/" + name)
		return
	}

	// Everything opened after the match closes with it.
	l.stack = l.stack[:depth]
	l.out.WriteString(Reset)
	for _, open := range l.stack {
		codes, _ := ResolveCompound(open)
		l.out.WriteString(codes)
	}
}

func (l *lexer) literal(content string) {
	l.out.WriteByte('[')
	l.out.WriteString(content)
	l.out.WriteByte(']')
}

// finish discards an unterminated tag and resets any style left open.
func (l *lexer) finish() {
	l.inTag = false
	l.tag.Reset()
	if len(l.stack) > 0 {
		l.out.WriteString(Reset)
	}
}
