package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/turboterm/pkg/errors"
	"github.com/arthur-debert/turboterm/pkg/logging"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "TURBOTERM_"

	// ProjectFileName is looked up in the working directory
	ProjectFileName = ".turboterm.toml"

	// ProjectYAMLFileName is the YAML alternative, used when no TOML project
	// file exists
	ProjectYAMLFileName = ".turboterm.yaml"

	// UserFileName is looked up under $XDG_CONFIG_HOME/turboterm
	UserFileName = "turboterm.toml"
)

// Width modes for table columns
const (
	WidthScalar = "scalar"
	WidthCell   = "cell"
)

// Config is the effective turboterm configuration
type Config struct {
	Output OutputConfig `koanf:"output" toml:"output"`
	Log    LogConfig    `koanf:"log" toml:"log"`
}

// OutputConfig controls how styled text reaches the terminal
type OutputConfig struct {
	NoColor   bool           `koanf:"no_color" toml:"no_color"`
	WidthMode string         `koanf:"width_mode" toml:"width_mode"`
	Markdown  MarkdownConfig `koanf:"markdown" toml:"markdown"`
}

// MarkdownConfig configures the glamour renderer
type MarkdownConfig struct {
	Style string `koanf:"style" toml:"style"`
	Width int    `koanf:"width" toml:"width"`
}

// LogConfig holds the base log verbosity
type LogConfig struct {
	Verbosity int `koanf:"verbosity" toml:"verbosity"`
}

// Options selects the files Load reads
type Options struct {
	// ConfigFile replaces the project file lookup. It must exist.
	ConfigFile string

	// WorkDir is where the project file is looked up. Defaults to ".".
	WorkDir string

	// Overrides are dotted keys applied after the environment, typically
	// from command line flags
	Overrides map[string]any
}

// Load builds the configuration from defaults, files and environment
func Load(opts Options) (*Config, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	xdg.Reload()
	userPath := filepath.Join(xdg.ConfigHome, "turboterm", UserFileName)
	if err := loadIfExists(k, userPath); err != nil {
		return nil, err
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
	} else {
		workDir := opts.WorkDir
		if workDir == "" {
			workDir = "."
		}
		projectFile := filepath.Join(workDir, ProjectFileName)
		if _, err := os.Stat(projectFile); err != nil {
			projectFile = filepath.Join(workDir, ProjectYAMLFileName)
		}
		if err := loadIfExists(k, projectFile); err != nil {
			return nil, err
		}
	}

	envKeys := envKeyMap(k.Keys())
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode config")
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.Output.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Bool("noColor", cfg.Output.NoColor).
		Str("widthMode", cfg.Output.WidthMode).
		Int("verbosity", cfg.Log.Verbosity).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Validate rejects values no component can honor
func (c *Config) Validate() error {
	switch c.Output.WidthMode {
	case WidthScalar, WidthCell:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown width_mode %q (expected %s or %s)",
			c.Output.WidthMode, WidthScalar, WidthCell).
			WithDetail("key", "output.width_mode")
	}
	if c.Output.Markdown.Width < 0 {
		return errors.Newf(errors.ErrConfigValid, "markdown width must not be negative, got %d",
			c.Output.Markdown.Width).
			WithDetail("key", "output.markdown.width")
	}
	if c.Log.Verbosity < 0 {
		return errors.Newf(errors.ErrConfigValid, "log verbosity must not be negative, got %d",
			c.Log.Verbosity).
			WithDetail("key", "log.verbosity")
	}
	return nil
}

// Dump renders the configuration as TOML
func Dump(cfg *Config) (string, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	return string(data), nil
}

func loadIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return loadFile(k, path)
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser = toml.Parser()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

// envKeyMap maps TURBOTERM_OUTPUT_NO_COLOR style names to config keys.
// Keys contain underscores, so the mapping cannot be derived by splitting.
func envKeyMap(keys []string) map[string]string {
	m := make(map[string]string, len(keys))
	for _, key := range keys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		m[name] = key
	}
	return m
}
