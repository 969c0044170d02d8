package logtree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"go.uber.org/multierr"
)

// Runtime modes. The mode is decided once at process start and selects the
// manager variant; it is not a hot-reload mechanism.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

const maxConfigFileSize = 1024 * 1024 // 1MB

// Config is the process configuration surface, read once at startup.
type Config struct {
	// Mode selects the manager variant: "development" or "production".
	Mode string `koanf:"mode"`
	// Level is the default severity for loggers with no explicit level
	// and no matching mapping.
	Level string `koanf:"level"`
	// Pretty selects human-readable console rendering (development only).
	Pretty bool `koanf:"pretty"`
	// Caller enables source-location enrichment (development only).
	Caller bool `koanf:"caller"`
	// Namespace enables caller-package auto-prefixing (development only).
	Namespace bool `koanf:"namespace"`
	// Output is "stdout", "stderr", or a file path.
	Output string `koanf:"output"`
}

// NewDefaultConfig returns the baseline configuration: production mode, info
// level, stdout. The development conveniences default on but only apply when
// mode is development.
func NewDefaultConfig() *Config {
	return &Config{
		Mode:      ModeProduction,
		Level:     "info",
		Pretty:    true,
		Caller:    true,
		Namespace: true,
		Output:    "stdout",
	}
}

// Development reports whether the development manager variant is selected.
func (c *Config) Development() bool {
	return c.Mode == ModeDevelopment
}

// DefaultSeverity parses the configured default level.
func (c *Config) DefaultSeverity() (Severity, error) {
	return ParseSeverity(c.Level)
}

// Validate checks config for errors, reporting every problem at once.
func (c *Config) Validate() error {
	var errs error
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		errs = multierr.Append(errs, fmt.Errorf("%w: mode must be %q or %q, got %q",
			ErrConfiguration, ModeDevelopment, ModeProduction, c.Mode))
	}
	if _, err := ParseSeverity(c.Level); err != nil {
		errs = multierr.Append(errs, err)
	}
	if c.Output == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: output must not be empty", ErrConfiguration))
	}
	return errs
}

// LoadConfig reads the process configuration.
//
// Precedence (highest to lowest):
//  1. Environment variables (LOGTREE_MODE, LOGTREE_LEVEL, LOGTREE_PRETTY,
//     LOGTREE_CALLER, LOGTREE_NAMESPACE, LOGTREE_OUTPUT)
//  2. Optional YAML file named by LOGTREE_CONFIG
//  3. Defaults (NewDefaultConfig)
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("LOGTREE_CONFIG"); path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("LOGTREE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "LOGTREE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("%w: config file %s exceeds %d bytes",
			ErrConfiguration, path, maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}
