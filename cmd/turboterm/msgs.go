package turboterm

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort     = "Style terminal text with bracket tags"
	MsgMarkdownDoc   = "Render a markdown file for the terminal"
	MsgWidthDoc      = "Print the visible width of styled text"
	MsgConfigDoc     = "Print the effective configuration as TOML"
	MsgVersionShort  = "Print version information"
	MsgWidthAfter    = "Escape sequences do not count. With width_mode = \"cell\" wide characters count twice."
	MsgConfigAfter   = "Configuration is read from built-in defaults, $XDG_CONFIG_HOME/turboterm/turboterm.toml,\n./.turboterm.toml (or --config) and TURBOTERM_* environment variables, in that order."
	MsgMarkdownAfter = "Use \"-\" as FILE to read standard input."

	// Parameter help
	MsgParamText     = "text with style tags"
	MsgParamFile     = "input file, \"-\" for standard input"
	MsgParamMarkdown = "markdown file, \"-\" for standard input"
	MsgFlagStrip     = "Print the text without styles"
	MsgFlagFormat    = "Row format: yaml, toml or csv (default: from the file extension, csv for standard input)"
	MsgFlagDefaults  = "Print the built-in defaults instead"

	// Error messages
	MsgErrReadFile    = "failed to read %s"
	MsgErrParseRows   = "failed to parse %s rows"
	MsgErrRowsFormat  = "unknown rows format %q (expected yaml, toml or csv)"
	MsgErrRowsShape   = "rows must be a list of lists, got %T"
	MsgErrRowShape    = "row %d must be a list, got %T"
	MsgErrRowsMissing = "document has no rows"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Read configuration from this file instead of ./.turboterm.toml"
	MsgFlagNoColor = "Disable colors and styles"

	// Main
	MsgErrorPrefix = "Error: "
	MsgUsageHint   = "Run 'turboterm --help' for usage."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/style-long.txt
	msgStyleLongRaw string
	MsgStyleLong    = strings.TrimSpace(msgStyleLongRaw)

	//go:embed msgs/style-after.txt
	msgStyleAfterRaw string
	MsgStyleAfter    = strings.TrimSpace(msgStyleAfterRaw)

	//go:embed msgs/table-long.txt
	msgTableLongRaw string
	MsgTableLong    = strings.TrimSpace(msgTableLongRaw)

	//go:embed msgs/table-after.txt
	msgTableAfterRaw string
	MsgTableAfter    = strings.TrimSpace(msgTableAfterRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
