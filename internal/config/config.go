package config

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Activity is one palette entry: an activity button with its display color.
// The palette is presentation configuration only; the tracker itself accepts
// any non-empty label.
type Activity struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"` // #RRGGBB
}

// Config holds the application configuration
type Config struct {
	Activities []Activity `yaml:"activities"`
}

// configFile represents the YAML config file structure
type configFile struct {
	Version    string     `yaml:"version"`
	Activities []Activity `yaml:"activities"`
}

const (
	// CurrentConfigVersion is the current version of the config file format
	CurrentConfigVersion = "1"
)

// DefaultActivities is the built-in palette, used when no config file exists.
func DefaultActivities() []Activity {
	return []Activity{
		{Name: "Work", Color: "#E74C3C"},
		{Name: "Chores", Color: "#F39C12"},
		{Name: "Rest/Entertain", Color: "#3498DB"},
		{Name: "Sleep", Color: "#2ECC71"},
		{Name: "Study", Color: "#9B59B6"},
		{Name: "Exercise", Color: "#1ABC9C"},
		{Name: "Meeting", Color: "#E67E22"},
		{Name: "Commute", Color: "#95A5A6"},
	}
}

// GetConfigDir returns the OS-specific config directory for quartertime.
// QUARTERTIME_CONFIG_DIR overrides it.
func GetConfigDir() (string, error) {
	if envDir := os.Getenv("QUARTERTIME_CONFIG_DIR"); envDir != "" {
		return expandHome(envDir)
	}

	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", eris.Wrap(err, "failed to get user home directory")
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", eris.New("APPDATA environment variable not set")
		}
		baseDir = appData
	default: // linux and others
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = xdgConfigHome
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", eris.Wrap(err, "failed to get user home directory")
			}
			baseDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(baseDir, "quartertime"), nil
}

// GetDBPath returns the full path to the SQLite database.
// QUARTERTIME_DB overrides it.
func GetDBPath() (string, error) {
	if envPath := os.Getenv("QUARTERTIME_DB"); envPath != "" {
		return expandHome(envPath)
	}

	configDir, err := GetConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "failed to get config directory")
	}

	return filepath.Join(configDir, "quartertime.db"), nil
}

// GetLogPath returns the full path to the debug log file.
func GetLogPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "failed to get config directory")
	}

	return filepath.Join(configDir, "quartertime.log"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return eris.Wrap(err, "failed to get config directory")
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return eris.Wrapf(err, "failed to create config directory: %s", configDir)
	}

	return nil
}

// LoadConfig loads the configuration, falling back to the default palette
// when no config file exists or it defines no activities.
func LoadConfig() (*Config, error) {
	cf, err := loadConfigFile()
	if err != nil {
		return nil, err
	}

	activities := cf.Activities
	if len(activities) == 0 {
		activities = DefaultActivities()
	}

	cfg := &Config{Activities: activities}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Activity returns the palette entry for a label, or false when the label is
// not part of the configured palette.
func (c *Config) Activity(name string) (Activity, bool) {
	for _, a := range c.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// Color returns the configured color for a label, or the fallback grey.
func (c *Config) Color(name string) string {
	if a, ok := c.Activity(name); ok {
		return a.Color
	}
	return "#CCCCCC"
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", eris.Wrap(err, "failed to get config directory")
	}

	return filepath.Join(configDir, "config.yaml"), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(config *Config) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return eris.Wrap(err, "failed to get config path")
	}

	if err := EnsureConfigDir(); err != nil {
		return eris.Wrap(err, "failed to ensure config directory")
	}

	cf := configFile{
		Version:    CurrentConfigVersion,
		Activities: config.Activities,
	}

	data, err := yaml.Marshal(&cf)
	if err != nil {
		return eris.Wrap(err, "failed to marshal config to YAML")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return eris.Wrapf(err, "failed to write config file: %s", configPath)
	}

	return nil
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateConfig validates the configuration settings
func ValidateConfig(config *Config) error {
	if len(config.Activities) == 0 {
		return eris.New("config must define at least one activity")
	}

	seen := make(map[string]bool, len(config.Activities))
	for _, a := range config.Activities {
		if a.Name == "" {
			return eris.New("activity name must not be empty")
		}
		if seen[a.Name] {
			return eris.Errorf("duplicate activity: %s", a.Name)
		}
		seen[a.Name] = true

		if a.Color != "" && !colorPattern.MatchString(a.Color) {
			return eris.Errorf("invalid color for %s: %s (must be #RRGGBB)", a.Name, a.Color)
		}
	}

	return nil
}

// loadConfigFile loads the config file from disk (internal helper)
func loadConfigFile() (*configFile, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return nil, eris.Wrap(err, "failed to get config directory")
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// If config file doesn't exist, return empty config (not an error)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &configFile{}, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read config file: %s", configPath)
	}

	var config configFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, eris.Wrapf(err, "failed to parse config file: %s", configPath)
	}

	return &config, nil
}

// expandHome expands ~ to the user's home directory in a path
func expandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", eris.Wrap(err, "failed to get user home directory")
	}

	if len(path) == 1 {
		return home, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:]), nil
	}

	return path, nil
}
