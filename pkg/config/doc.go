// Package config handles configuration management for turboterm.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Embedded defaults (embedded/defaults.toml)
//  2. User file: $XDG_CONFIG_HOME/turboterm/turboterm.toml
//  3. Project file: ./.turboterm.toml, or the path given with --config
//  4. Environment: TURBOTERM_OUTPUT_NO_COLOR, TURBOTERM_OUTPUT_WIDTH_MODE,
//     TURBOTERM_OUTPUT_MARKDOWN_STYLE, TURBOTERM_OUTPUT_MARKDOWN_WIDTH,
//     TURBOTERM_LOG_VERBOSITY
//  5. NO_COLOR (any non-empty value forces no_color)
package config
