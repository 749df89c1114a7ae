package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// FileName is the settings file looked up in the user config directory
	FileName = "wg-burrow.config.yaml"

	// EnvPath overrides the settings file location
	EnvPath = "WG_BURROW_CONFIG"

	// EnvDebug enables debug logging on stderr when set to a non-empty value other than "0"
	EnvDebug = "WG_BURROW_DEBUG"

	DefaultStateFile      = "/tmp/wg-current"
	DefaultConnectionType = "wireguard"
	DefaultNmcli          = "nmcli"
)

// Config represents the root settings structure
type Config struct {
	// StateFile holds the name of the currently selected tunnel
	StateFile string `yaml:"state_file"`
	// ConnectionType is the NetworkManager connection type treated as a tunnel
	ConnectionType string `yaml:"connection_type"`
	// Nmcli is the nmcli binary to run
	Nmcli string `yaml:"nmcli"`
	Debug bool   `yaml:"debug"`
}

// Default returns the settings used when no file is present
func Default() *Config {
	return &Config{
		StateFile:      DefaultStateFile,
		ConnectionType: DefaultConnectionType,
		Nmcli:          DefaultNmcli,
	}
}

// Load reads and parses the YAML settings file.
// Fields left out of the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.fillDefaults()

	stateFile, err := expandHome(config.StateFile)
	if err != nil {
		return nil, err
	}
	config.StateFile = stateFile

	return config, nil
}

// LoadOrDefault loads the settings file at path. A missing file is not an error.
// Any other failure is returned together with the defaults so the caller can
// report it and keep going.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(Default()), nil
		}
		return applyEnv(Default()), err
	}
	return applyEnv(config), nil
}

// Path picks the settings file: $WG_BURROW_CONFIG if set, otherwise
// wg-burrow.config.yaml in the user config directory.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, FileName)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", FileName)
	}
	return FileName
}

func (c *Config) fillDefaults() {
	if strings.TrimSpace(c.StateFile) == "" {
		c.StateFile = DefaultStateFile
	}
	if strings.TrimSpace(c.ConnectionType) == "" {
		c.ConnectionType = DefaultConnectionType
	}
	if strings.TrimSpace(c.Nmcli) == "" {
		c.Nmcli = DefaultNmcli
	}
}

func applyEnv(c *Config) *Config {
	if v := os.Getenv(EnvDebug); v != "" && v != "0" {
		c.Debug = true
	}
	return c
}

// expandHome resolves a leading "~/" against the user's home directory
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	if path == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}
