package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed uoled.toml
var defaultConfigData []byte

// Global state variables for the selected display profile
var (
	DisplayName string
	PortName    string
	Baud        int // 0 means "fastest the device supports"
	Volume      int
)

// validBauds are the bit rates the display firmware can be switched to.
var validBauds = []int{9600, 19200, 38400, 57600, 115200, 128000, 256000}

// Config represents the entire TOML configuration structure
type Config struct {
	Default string    `toml:"default"`
	Display []Display `toml:"display"`
}

// Display represents one display profile: which serial device it hangs
// off and how to talk to it.
type Display struct {
	Name   string `toml:"name"`
	Port   string `toml:"port"`
	Baud   int    `toml:"baud"`
	Volume int    `toml:"volume"`
}

// configPath determines the config file path based on the operating system
func configPath() (string, error) {
	var configDir string
	var err error

	switch runtime.GOOS {
	case "windows":
		// Use AppData directory for Windows
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "uoled")
	default:
		// Linux/macOS: use home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
	}

	return filepath.Join(configDir, ".uoled"), nil
}

func validBaud(rate int) bool {
	for _, b := range validBauds {
		if rate == b {
			return true
		}
	}
	return false
}

// Initialize loads and validates the configuration file.
// If the config file doesn't exist, it creates it from the embedded default.
func Initialize() error {
	configPath, err := configPath()
	if err != nil {
		return err
	}

	// Create the config from the embedded default on first run.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory %s: %w", configDir, err)
		}
		if err := os.WriteFile(configPath, defaultConfigData, 0644); err != nil {
			return fmt.Errorf("failed to create default config file at %s: %w", configPath, err)
		}
	}

	var conf Config
	if _, err := toml.DecodeFile(configPath, &conf); err != nil {
		return fmt.Errorf("failed to parse TOML config at %s: %w", configPath, err)
	}

	if conf.Default == "" {
		return errors.New("`default` key is missing or empty in config")
	}

	var found *Display
	for i := range conf.Display {
		if conf.Display[i].Name == conf.Default {
			found = &conf.Display[i]
			break
		}
	}
	if found == nil {
		return fmt.Errorf("default display %q not found in display array", conf.Default)
	}

	if found.Port == "" {
		return fmt.Errorf("display %q has no port configured", conf.Default)
	}
	if found.Baud != 0 && !validBaud(found.Baud) {
		return fmt.Errorf("display %q has invalid baud: %d (supported: %v, or 0 for fastest)",
			conf.Default, found.Baud, validBauds)
	}
	if found.Volume < 0 || found.Volume > 127 {
		return fmt.Errorf("display %q has invalid volume: %d (must be 0..127)",
			conf.Default, found.Volume)
	}

	DisplayName = conf.Default
	PortName = found.Port
	Baud = found.Baud
	Volume = found.Volume
	return nil
}
