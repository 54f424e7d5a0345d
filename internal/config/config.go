package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/podsrc/internal/core"
	"github.com/indaco/podsrc/internal/tui"
)

const (
	// FileName is the configuration file looked up in the working directory.
	FileName = ".podsrc.yaml"

	// EnvPath overrides the configuration with a single source at its value.
	EnvPath = "PODSRC_PATH"

	// DefaultSourceName names the source used when none is configured.
	DefaultSourceName = "local"
)

// SourceConfig declares one local source.
type SourceConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// DiscoveryConfig controls which files a source scan picks up.
type DiscoveryConfig struct {
	Patterns []string `yaml:"patterns,omitempty"`
	Exclude  []string `yaml:"exclude,omitempty"`
}

// Config is the main configuration structure for podsrc.
type Config struct {
	Sources   []SourceConfig   `yaml:"sources"`
	Discovery *DiscoveryConfig `yaml:"discovery,omitempty"`
	Theme     string           `yaml:"theme,omitempty"`
}

// Default returns the configuration used when no file or env override exists:
// one source named "local" rooted at the working directory.
func Default() *Config {
	return &Config{Sources: []SourceConfig{{Name: DefaultSourceName, Path: "."}}}
}

// GetTheme returns the configured theme, or tui.DefaultTheme when unset.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return tui.DefaultTheme
	}
	return c.Theme
}

// FindSource returns the source with the given name. An empty name selects
// the first configured source.
func (c *Config) FindSource(name string) (SourceConfig, bool) {
	if len(c.Sources) == 0 {
		return SourceConfig{}, false
	}
	if name == "" {
		return c.Sources[0], true
	}
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceConfig{}, false
}

// SourceNames lists the configured source names in file order.
func (c *Config) SourceNames() []string {
	names := make([]string, 0, len(c.Sources))
	for _, s := range c.Sources {
		names = append(names, s.Name)
	}
	return names
}

// Patterns returns the configured discovery globs, or nil for the defaults.
func (c *Config) Patterns() []string {
	if c.Discovery == nil {
		return nil
	}
	return c.Discovery.Patterns
}

// Excludes returns the configured exclude globs.
func (c *Config) Excludes() []string {
	if c.Discovery == nil {
		return nil
	}
	return c.Discovery.Exclude
}

// FileOpener abstracts file opening operations for testability.
type FileOpener interface {
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
}

// FileWriter abstracts file writing operations for testability.
type FileWriter interface {
	WriteFile(file *os.File, data []byte) (int, error)
}

// ConfigSaver handles configuration saving with injected dependencies.
type ConfigSaver struct {
	marshaler  core.Marshaler
	fileOpener FileOpener
	fileWriter FileWriter
}

type osFileOpener struct{}

func (o *osFileOpener) OpenFile(name string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(name, flag, perm)
}

type osFileWriter struct{}

func (w *osFileWriter) WriteFile(file *os.File, data []byte) (int, error) {
	return file.Write(data)
}

type yamlMarshaler struct{}

func (m *yamlMarshaler) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// NewConfigSaver creates a ConfigSaver with the given dependencies.
// If any dependency is nil, the production default is used.
func NewConfigSaver(marshaler core.Marshaler, opener FileOpener, writer FileWriter) *ConfigSaver {
	if marshaler == nil {
		marshaler = &yamlMarshaler{}
	}
	if opener == nil {
		opener = &osFileOpener{}
	}
	if writer == nil {
		writer = &osFileWriter{}
	}
	return &ConfigSaver{
		marshaler:  marshaler,
		fileOpener: opener,
		fileWriter: writer,
	}
}

// Save writes the configuration to FileName in the working directory.
func (s *ConfigSaver) Save(cfg *Config) error {
	return s.SaveTo(cfg, FileName)
}

// SaveTo writes the configuration to configFile with owner-only permissions.
func (s *ConfigSaver) SaveTo(cfg *Config, configFile string) error {
	data, err := s.marshaler.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to %q: %w", configFile, err)
	}

	file, err := s.fileOpener.OpenFile(configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open config file %q: %w", configFile, err)
	}
	defer file.Close()

	if _, err := s.fileWriter.WriteFile(file, data); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", configFile, err)
	}

	return nil
}

var defaultConfigSaver = NewConfigSaver(nil, nil, nil)

// LoadConfigFn and SaveConfigFn are package variables so commands can be
// tested without touching the working directory.
var (
	LoadConfigFn = loadConfig
	SaveConfigFn = func(cfg *Config, path string) error {
		return defaultConfigSaver.SaveTo(cfg, path)
	}
)

// loadConfig returns the effective configuration. It returns (nil, nil) when
// neither the env override nor a config file exists; callers fall back to
// Default().
func loadConfig() (*Config, error) {
	// Highest priority: ENV variable
	if envPath := os.Getenv(EnvPath); envPath != "" {
		cleanPath := filepath.Clean(envPath)
		// Reject relative paths with traversal (use absolute paths instead)
		if strings.Contains(cleanPath, "..") {
			return nil, fmt.Errorf("invalid %s: path traversal not allowed, use absolute path instead", EnvPath)
		}
		return &Config{Sources: []SourceConfig{{Name: DefaultSourceName, Path: cleanPath}}}, nil
	}

	// Second priority: YAML file
	data, err := os.ReadFile(FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", FileName, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document strictly; unknown keys are errors.
// A document without sources gets the default source.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if len(cfg.Sources) == 0 {
		cfg.Sources = Default().Sources
	}
	return &cfg, nil
}

// ConfigFilePerm defines secure file permissions for config files (owner read/write only).
const ConfigFilePerm = core.PermOwnerRW
