package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/turboterm/pkg/errors"
)

// isolate points XDG and the working directory at empty temp dirs and
// clears color/env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "")
	for _, name := range []string{
		"TURBOTERM_OUTPUT_NO_COLOR",
		"TURBOTERM_OUTPUT_WIDTH_MODE",
		"TURBOTERM_OUTPUT_MARKDOWN_STYLE",
		"TURBOTERM_OUTPUT_MARKDOWN_WIDTH",
		"TURBOTERM_LOG_VERBOSITY",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
	return t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	workDir := isolate(t)

	cfg, err := Load(Options{WorkDir: workDir})
	require.NoError(t, err)

	assert.False(t, cfg.Output.NoColor)
	assert.Equal(t, WidthScalar, cfg.Output.WidthMode)
	assert.Equal(t, "auto", cfg.Output.Markdown.Style)
	assert.Equal(t, 80, cfg.Output.Markdown.Width)
	assert.Equal(t, 0, cfg.Log.Verbosity)
}

func TestLoadLayers(t *testing.T) {
	t.Run("user file overrides defaults", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "turboterm", UserFileName), `
[output]
width_mode = "cell"
`)

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, WidthCell, cfg.Output.WidthMode)
		assert.Equal(t, 80, cfg.Output.Markdown.Width)
	})

	t.Run("project file overrides user file", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "turboterm", UserFileName), `
[output.markdown]
width = 100
style = "dark"
`)
		writeFile(t, filepath.Join(workDir, ProjectFileName), `
[output.markdown]
width = 60
`)

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, 60, cfg.Output.Markdown.Width)
		assert.Equal(t, "dark", cfg.Output.Markdown.Style)
	})

	t.Run("explicit file replaces project lookup", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ProjectFileName), `
[log]
verbosity = 1
`)
		explicit := filepath.Join(t.TempDir(), "custom.toml")
		writeFile(t, explicit, `
[log]
verbosity = 2
`)

		cfg, err := Load(Options{WorkDir: workDir, ConfigFile: explicit})
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Log.Verbosity)
	})

	t.Run("env overrides files", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ProjectFileName), `
[output]
no_color = false
`)
		t.Setenv("TURBOTERM_OUTPUT_NO_COLOR", "true")
		t.Setenv("TURBOTERM_OUTPUT_MARKDOWN_WIDTH", "42")

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.True(t, cfg.Output.NoColor)
		assert.Equal(t, 42, cfg.Output.Markdown.Width)
	})

	t.Run("yaml project file", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ProjectYAMLFileName), "output:\n  width_mode: cell\n")

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, WidthCell, cfg.Output.WidthMode)
	})

	t.Run("toml project file wins over yaml", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ProjectFileName), "[log]\nverbosity = 1\n")
		writeFile(t, filepath.Join(workDir, ProjectYAMLFileName), "log:\n  verbosity: 3\n")

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.Log.Verbosity)
	})

	t.Run("explicit yaml file", func(t *testing.T) {
		workDir := isolate(t)
		explicit := filepath.Join(t.TempDir(), "custom.yml")
		writeFile(t, explicit, "output:\n  markdown:\n    style: light\n")

		cfg, err := Load(Options{WorkDir: workDir, ConfigFile: explicit})
		require.NoError(t, err)
		assert.Equal(t, "light", cfg.Output.Markdown.Style)
	})

	t.Run("overrides beat env", func(t *testing.T) {
		workDir := isolate(t)
		t.Setenv("TURBOTERM_OUTPUT_WIDTH_MODE", "cell")

		cfg, err := Load(Options{
			WorkDir:   workDir,
			Overrides: map[string]any{"output.width_mode": WidthScalar, "output.no_color": true},
		})
		require.NoError(t, err)
		assert.Equal(t, WidthScalar, cfg.Output.WidthMode)
		assert.True(t, cfg.Output.NoColor)
	})

	t.Run("NO_COLOR forces no color", func(t *testing.T) {
		workDir := isolate(t)
		t.Setenv("NO_COLOR", "1")

		cfg, err := Load(Options{WorkDir: workDir})
		require.NoError(t, err)
		assert.True(t, cfg.Output.NoColor)
	})
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		workDir := isolate(t)
		_, err := Load(Options{WorkDir: workDir, ConfigFile: filepath.Join(workDir, "nope.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad), "got %v", err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		workDir := isolate(t)
		writeFile(t, filepath.Join(workDir, ProjectFileName), "[output\nno_color = ")
		_, err := Load(Options{WorkDir: workDir})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
	})

	t.Run("invalid width mode", func(t *testing.T) {
		workDir := isolate(t)
		t.Setenv("TURBOTERM_OUTPUT_WIDTH_MODE", "graphemes")
		_, err := Load(Options{WorkDir: workDir})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
		assert.Equal(t, "output.width_mode", errors.GetErrorDetails(err)["key"])
	})
}

func TestValidate(t *testing.T) {
	valid := Config{Output: OutputConfig{WidthMode: WidthScalar}}
	assert.NoError(t, valid.Validate())

	negative := Config{Output: OutputConfig{WidthMode: WidthCell, Markdown: MarkdownConfig{Width: -1}}}
	assert.True(t, errors.IsErrorCode(negative.Validate(), errors.ErrConfigValid))

	verbosity := Config{Output: OutputConfig{WidthMode: WidthCell}, Log: LogConfig{Verbosity: -2}}
	assert.True(t, errors.IsErrorCode(verbosity.Validate(), errors.ErrConfigValid))
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Output: OutputConfig{
			NoColor:   true,
			WidthMode: WidthCell,
			Markdown:  MarkdownConfig{Style: "notty", Width: 72},
		},
		Log: LogConfig{Verbosity: 1},
	}

	out, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "[output]")
	assert.Contains(t, out, "no_color = true")
	assert.Contains(t, out, "width_mode = 'cell'")
	assert.Contains(t, out, "[output.markdown]")
	assert.Contains(t, out, "width = 72")
	assert.Contains(t, out, "[log]")
	assert.Contains(t, out, "verbosity = 1")
}

func TestEnvKeyMap(t *testing.T) {
	m := envKeyMap([]string{"output.no_color", "log.verbosity"})
	assert.Equal(t, "output.no_color", m["TURBOTERM_OUTPUT_NO_COLOR"])
	assert.Equal(t, "log.verbosity", m["TURBOTERM_LOG_VERBOSITY"])
	assert.Empty(t, m["TURBOTERM_OUTPUT_NO"])
}

func TestDefaultContent(t *testing.T) {
	assert.Contains(t, DefaultContent(), "width_mode")
}
