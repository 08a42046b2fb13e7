package turboterm

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/turboterm/internal/version"
	"github.com/arthur-debert/turboterm/pkg/config"
)

type result struct {
	stdout string
	stderr string
	code   int
}

// run executes turboterm in an isolated environment with color disabled.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	code := Execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const statusTable = "┌──────┬────────┐\n" +
	"│ Name ┆ Status │\n" +
	"├╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌┤\n" +
	"│ api  ┆ up     │\n" +
	"└──────┴────────┘\n"

func TestStyleCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"joins words", []string{"style", "[b]hello[/b]", "world"}, "hello world\n"},
		{"strip flag", []string{"style", "--strip", "[u]plain[/u]"}, "plain\n"},
		{"unknown tag kept", []string{"style", "[nope]x[/nope]"}, "[nope]x[/nope]\n"},
		{"no tags", []string{"style", "a [1] b"}, "a [1] b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestStyleCommandRequiresText(t *testing.T) {
	res := run(t, "", "style")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "requires at least 1 arg")
	assert.Contains(t, res.stderr, MsgUsageHint)
}

func TestTableCommand(t *testing.T) {
	t.Run("csv from stdin", func(t *testing.T) {
		res := run(t, "Name,Status\napi,[green]up[/green]\n", "table")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, statusTable, res.stdout)
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		res := run(t, "Name,Status\napi,up\n", "table", "-")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, statusTable, res.stdout)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := writeTemp(t, "rows.yaml", "- [\"[b]Name[/b]\", Status]\n- [api, up]\n")
		res := run(t, "", "table", path)
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, statusTable, res.stdout)
	})

	t.Run("toml file", func(t *testing.T) {
		path := writeTemp(t, "rows.toml", "rows = [[\"Name\", \"Status\"], [\"api\", \"up\"]]\n")
		res := run(t, "", "table", path)
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, statusTable, res.stdout)
	})

	t.Run("explicit format", func(t *testing.T) {
		path := writeTemp(t, "rows.txt", "rows:\n  - [Name, Status]\n  - [api, up]\n")
		res := run(t, "", "table", "--format", "yaml", path)
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, statusTable, res.stdout)
	})

	t.Run("empty input", func(t *testing.T) {
		res := run(t, "", "table")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, "┌┐\n└┘\n", res.stdout)
	})

	t.Run("unknown format", func(t *testing.T) {
		res := run(t, "", "table", "--format", "xml")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "INVALID_INPUT")
	})

	t.Run("missing file", func(t *testing.T) {
		res := run(t, "", "table", filepath.Join(t.TempDir(), "absent.csv"))
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "FILE_READ")
	})

	t.Run("malformed rows", func(t *testing.T) {
		path := writeTemp(t, "rows.yaml", "- just a string\n")
		res := run(t, "", "table", path)
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "ROWS_PARSE")
	})
}

func TestMarkdownCommand(t *testing.T) {
	path := writeTemp(t, "doc.md", "# Release notes\n\nEverything is *faster*.\n")
	res := run(t, "", "markdown", path)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Release notes")
	assert.Contains(t, res.stdout, "faster")
	assert.NotContains(t, res.stdout, "\x1b[")

	res = run(t, "# From stdin\n", "markdown", "-")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "From stdin")
}

func TestWidthCommand(t *testing.T) {
	res := run(t, "", "width", "[red]ab[/red]")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2\n", res.stdout)

	res = run(t, "", "width", "[b]two[/b]", "words")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "9\n", res.stdout)

	res = run(t, "", "width", "日本")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "2\n", res.stdout)

	cfgPath := writeTemp(t, "cell.toml", "[output]\nwidth_mode = \"cell\"\n")
	res = run(t, "", "--config", cfgPath, "width", "日本")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "4\n", res.stdout)
}

func TestConfigCommand(t *testing.T) {
	res := run(t, "", "config")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[output]")
	assert.Contains(t, res.stdout, "no_color = true")
	assert.Contains(t, res.stdout, "width_mode = 'scalar'")

	res = run(t, "", "config", "--defaults")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, strings.TrimRight(config.DefaultContent(), "\n")+"\n", res.stdout)

	res = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml"), "config")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "CONFIG_LOAD")
}

func TestVersionCommand(t *testing.T) {
	res := run(t, "", "version")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, version.String(), res.stdout)
}

func TestHelp(t *testing.T) {
	t.Run("no arguments", func(t *testing.T) {
		res := run(t, "")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "USAGE:")
		for _, name := range []string{"style", "table", "markdown", "width", "config", "version"} {
			assert.Contains(t, res.stdout, name)
		}
	})

	t.Run("command help shows examples", func(t *testing.T) {
		res := run(t, "", "style", "--help")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "style TEXT...")
		assert.Contains(t, res.stdout, "--strip")
		assert.Contains(t, res.stdout, "--no-color")
		assert.Contains(t, res.stdout, MsgStyleAfter)
	})

	t.Run("help command", func(t *testing.T) {
		res := run(t, "", "help", "style")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, MsgStyleAfter)
	})

	t.Run("unknown command", func(t *testing.T) {
		res := run(t, "", "paint")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "unknown command")
		assert.Contains(t, res.stderr, MsgUsageHint)
	})
}

func TestHelpTopics(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		res := run(t, "", "help", "topics")
		require.Equal(t, 0, res.code, res.stderr)
		for _, name := range []string{"markup", "tables", "configuration", "--no-color"} {
			assert.Contains(t, res.stdout, name)
		}
		assert.Contains(t, res.stdout, "turboterm help <topic>")
	})

	t.Run("markdown topic", func(t *testing.T) {
		res := run(t, "", "help", "markup")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "Markup tags")
		assert.NotContains(t, res.stdout, "\x1b[")
	})

	t.Run("option topic", func(t *testing.T) {
		res := run(t, "", "help", "no-color")
		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "NO_COLOR")
	})

	t.Run("unknown topic", func(t *testing.T) {
		res := run(t, "", "help", "colours")
		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "unknown help topic")
		assert.Contains(t, res.stderr, MsgUsageHint)
	})
}
