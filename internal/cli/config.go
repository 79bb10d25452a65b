package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"blocksort/internal/gen"
)

// Config holds the harness defaults that the config file can override.
type Config struct {
	// MaxSize is the largest dataset the bench command times.
	MaxSize int `json:"max_size"`

	// Step is the size increment between timed bench runs.
	Step int `json:"step"`

	// Seed seeds the input generators.
	Seed int64 `json:"seed"`

	// VerifySize is the dataset size the verify command uses.
	VerifySize int `json:"verify_size"`
}

// ConfigFileName is the project config file name.
const ConfigFileName = ".blocksort.json"

var (
	errConfigFileRead = errors.New("cannot read config file")
	errConfigInvalid  = errors.New("invalid config file")
)

// DefaultConfig returns the built-in defaults, matching the harness the
// sorter was originally validated with.
func DefaultConfig() Config {
	return Config{
		MaxSize:    1_500_000,
		Step:       32768,
		Seed:       gen.DefaultSeed,
		VerifySize: 1_500_000,
	}
}

// globalConfigPath returns the path to the user-level config file.
// Uses $XDG_CONFIG_HOME/blocksort/config.json if set, otherwise
// ~/.config/blocksort/config.json. Empty if neither can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "blocksort", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "blocksort", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest
// wins): defaults, global user config, project config in workDir, then an
// explicit config file via configPath. Missing files are fine; unreadable
// or invalid ones are errors.
func LoadConfig(workDir, configPath string, env map[string]string) (Config, error) {
	cfg := DefaultConfig()

	if global := globalConfigPath(env); global != "" {
		if err := mergeConfigFile(&cfg, global, false); err != nil {
			return Config{}, err
		}
	}

	project := filepath.Join(workDir, ConfigFileName)
	if err := mergeConfigFile(&cfg, project, false); err != nil {
		return Config{}, err
	}

	if configPath != "" {
		if err := mergeConfigFile(&cfg, configPath, true); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// mergeConfigFile overlays the HuJSON config at path onto cfg. When
// required is false, a missing file is not an error.
func mergeConfigFile(cfg *Config, path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}

		return fmt.Errorf("%w: %s: %w", errConfigFileRead, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", errConfigInvalid, path, err)
	}

	if err := json.Unmarshal(standardized, cfg); err != nil {
		return fmt.Errorf("%w: %s: %w", errConfigInvalid, path, err)
	}

	return nil
}

func (c Config) validate() error {
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max_size must be >= 0", errConfigInvalid)
	}

	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be > 0", errConfigInvalid)
	}

	if c.VerifySize < 0 {
		return fmt.Errorf("%w: verify_size must be >= 0", errConfigInvalid)
	}

	return nil
}
