// Package markup converts bracket-tag style markup into text carrying
// literal ANSI SGR escape sequences.
//
// # Tags
//
// A tag is the content between one '[' and ']'. Opening tags hold one or
// more space-separated style tokens; closing tags repeat the exact opening
// text after a slash:
//
//	[b]bold[/b]
//	[bold red on_white]alert[/bold red on_white]
//	[color(208)]orange[/color(208)]
//	[rgb(255,128,0)]orange[/rgb(255,128,0)]
//	[#ff8000]orange[/#ff8000]  [on_#000040]navy background[/on_#000040]
//
// A compound tag is opened and closed as one unit, so "[b u]x[/b]" leaves
// the "[/b]" untouched.
//
// # Degradation
//
// Apply never fails. Unknown tokens, out-of-range numbers, bad hex and
// closing tags with no matching open tag are all reproduced verbatim. A tag
// still unterminated at the end of the text is dropped.
//
// # Unwinding
//
// ANSI has no generic "turn this attribute off" code, so closing a tag
// emits a full reset and replays every tag still open. Closing an outer tag
// implicitly closes everything opened after it.
//
// # Width
//
// VisibleWidth counts the scalars left after removing escape sequences.
// Every scalar counts as one column; CellWidth is the wide-character aware
// alternative.
package markup
