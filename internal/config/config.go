package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"aptls/internal/model"
)

// Config holds user-tunable settings parsed from config.toml.
type Config struct {
	Settings Settings       `toml:"settings"`
	Columns  map[string]int `toml:"columns"` // column key -> display width
}

// Settings is the [settings] block.
type Settings struct {
	ListCommand    string `toml:"list_command"`    // base list invocation
	SSHCommand     string `toml:"ssh_command"`     // binary used for remote targets
	SortColumn     string `toml:"sort_column"`     // default sort key
	SortDescending bool   `toml:"sort_descending"` // default sort direction
}

const defaultConfigTOML = `# aptls configuration

[settings]
list_command = "apt list"
ssh_command = "ssh"
sort_column = "name"
sort_descending = false

# Display widths per column. Valid keys: name, source, version, arch, status.
[columns]
name = 30
source = 18
version = 18
arch = 8
status = 26
`

// configPath returns the full path to the config file, using
// XDG_CONFIG_HOME or the platform fallback.
func configPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "aptls", "config.toml"), nil
}

// Default returns the built-in configuration.
func Default() Config {
	cfg, _, err := Parse([]byte(defaultConfigTOML))
	if err != nil {
		panic(err) // the embedded default must parse
	}
	return cfg
}

// Load reads the config file, creating it with defaults if missing. The
// returned schema has the configured widths and sort key already applied and
// validated; a bad sort key is rejected here, before any rebuild. On error
// the returned values are zero; callers wanting a fallback use Default.
func Load() (Config, model.Schema, error) {
	path, err := configPath()
	if err != nil {
		return Config{}, model.Schema{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return Config{}, model.Schema{}, fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultConfigTOML), 0644); wErr != nil {
			return Config{}, model.Schema{}, fmt.Errorf("write default config: %w", wErr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, model.Schema{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses TOML bytes into a Config and the schema derived from it.
func Parse(data []byte) (Config, model.Schema, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, model.Schema{}, fmt.Errorf("parse config.toml: %w", err)
	}

	schema := model.DefaultSchema()

	for key, width := range cfg.Columns {
		key = strings.ToLower(strings.TrimSpace(key))
		if _, ok := schema.ColumnByKey(key); !ok {
			return Config{}, model.Schema{}, fmt.Errorf("columns: unknown column %q", key)
		}
		if width < 4 || width > 120 {
			return Config{}, model.Schema{}, fmt.Errorf("columns: width for %q out of range (4-120)", key)
		}
		for i := range schema.Columns {
			if schema.Columns[i].Key == key {
				schema.Columns[i].Width = width
			}
		}
	}

	if cfg.Settings.ListCommand == "" {
		cfg.Settings.ListCommand = "apt list"
	}
	if cfg.Settings.SSHCommand == "" {
		cfg.Settings.SSHCommand = "ssh"
	}
	if cfg.Settings.SortColumn != "" {
		schema.Sort = model.SortKey{
			Column:     strings.ToLower(strings.TrimSpace(cfg.Settings.SortColumn)),
			Descending: cfg.Settings.SortDescending,
		}
	}
	if err := schema.Validate(); err != nil {
		return Config{}, model.Schema{}, fmt.Errorf("settings: %w", err)
	}

	return cfg, schema, nil
}
