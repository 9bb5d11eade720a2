package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"codelaunch/internal/errors"
	"codelaunch/pkg/types"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file kept beside the executable.
const FileName = "config.json"

// Default values used on first run and for keys missing from the file.
const (
	DefaultNativeRoot      = "H:/Development/VS Code workspaces"
	DefaultVirtualizedRoot = "/mnt/h/Development/VS Code workspaces"

	DefaultNativeStable        = "code.cmd"
	DefaultNativeInsiders      = "code-insiders.cmd"
	DefaultVirtualizedStable   = "wsl code"
	DefaultVirtualizedInsiders = "wsl code-insiders"

	DefaultWidth           = 500
	DefaultHeight          = 300
	DefaultResizeThreshold = 10
)

// Commands holds the four editor command templates. Each template is split
// on whitespace and the workspace path is appended as the last argument.
type Commands struct {
	NativeStable        string `json:"native_stable" yaml:"native_stable"`
	NativeInsiders      string `json:"native_insiders" yaml:"native_insiders"`
	VirtualizedStable   string `json:"virtualized_stable" yaml:"virtualized_stable"`
	VirtualizedInsiders string `json:"virtualized_insiders" yaml:"virtualized_insiders"`
}

// For returns the template selected by environment and edition.
func (c Commands) For(env types.Environment, edition types.Edition) string {
	switch {
	case env == types.Virtualized && edition == types.Insiders:
		return c.VirtualizedInsiders
	case env == types.Virtualized:
		return c.VirtualizedStable
	case edition == types.Insiders:
		return c.NativeInsiders
	default:
		return c.NativeStable
	}
}

// WindowSize is the last persisted window size in pixels.
type WindowSize struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Config represents the launcher configuration file.
type Config struct {
	NativeRoot          string        `json:"native_root" yaml:"native_root"`
	VirtualizedRoot     string        `json:"virtualized_root" yaml:"virtualized_root"`
	Commands            Commands      `json:"commands" yaml:"commands"`
	LastSelectedEdition types.Edition `json:"last_selected_edition" yaml:"last_selected_edition"`
	WindowSize          WindowSize    `json:"window_size" yaml:"window_size"`
	ResizeThreshold     int           `json:"resize_threshold" yaml:"resize_threshold"` // px
	WatchWorkspaces     *bool         `json:"watch_workspaces,omitempty" yaml:"watch_workspaces,omitempty"`
}

// legacyConfig is the key layout of older configuration files.
type legacyConfig struct {
	WindowsWorkspacesPath string `json:"windows_workspaces_path"`
	WSLWorkspacesPath     string `json:"wsl_workspaces_path"`
	LaunchOptions         *struct {
		WindowsCommand         string `json:"windows_command"`
		WindowsInsidersCommand string `json:"windows_insiders_command"`
		WSLCommand             string `json:"wsl_command"`
		WSLInsidersCommand     string `json:"wsl_insiders_command"`
	} `json:"launch_options"`
	LastSelectedOption string `json:"last_selected_option"`
}

// New returns the default configuration.
func New() *Config {
	watch := true
	return &Config{
		NativeRoot:      DefaultNativeRoot,
		VirtualizedRoot: DefaultVirtualizedRoot,
		Commands: Commands{
			NativeStable:        DefaultNativeStable,
			NativeInsiders:      DefaultNativeInsiders,
			VirtualizedStable:   DefaultVirtualizedStable,
			VirtualizedInsiders: DefaultVirtualizedInsiders,
		},
		LastSelectedEdition: types.Stable,
		WindowSize:          WindowSize{Width: DefaultWidth, Height: DefaultHeight},
		ResizeThreshold:     DefaultResizeThreshold,
		WatchWorkspaces:     &watch,
	}
}

// DefaultPath returns config.json beside the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// Parse decodes configuration bytes. Comments and trailing commas are
// accepted, unknown keys are ignored and legacy keys are migrated. Keys
// missing from the data keep their default values; keys that are present
// keep the value written, zero values included.
func Parse(data []byte) (*Config, error) {
	cleaned := jsonc.ToJSON(data)

	cfg := New()
	if err := json.Unmarshal(cleaned, cfg); err != nil {
		return nil, err
	}
	var present keySet
	if err := json.Unmarshal(cleaned, &present); err != nil {
		return nil, err
	}
	var legacy legacyConfig
	if err := json.Unmarshal(cleaned, &legacy); err != nil {
		return nil, err
	}
	migrateLegacy(cfg, &legacy, present)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// keySet records which keys of a JSON object were present.
type keySet map[string]json.RawMessage

func (k keySet) has(name string) bool {
	_, ok := k[name]
	return ok
}

// object returns the keys of the nested object name, or nil.
func (k keySet) object(name string) keySet {
	var inner keySet
	if raw, ok := k[name]; ok {
		_ = json.Unmarshal(raw, &inner)
	}
	return inner
}

// migrateLegacy copies old-style keys into their current fields when the
// current key is absent from the file.
func migrateLegacy(cfg *Config, legacy *legacyConfig, present keySet) {
	if !present.has("native_root") && legacy.WindowsWorkspacesPath != "" {
		cfg.NativeRoot = legacy.WindowsWorkspacesPath
	}
	if !present.has("virtualized_root") && legacy.WSLWorkspacesPath != "" {
		cfg.VirtualizedRoot = legacy.WSLWorkspacesPath
	}
	if opts := legacy.LaunchOptions; opts != nil {
		commands := present.object("commands")
		migrate := func(key, value string, field *string) {
			if !commands.has(key) && value != "" {
				*field = value
			}
		}
		migrate("native_stable", opts.WindowsCommand, &cfg.Commands.NativeStable)
		migrate("native_insiders", opts.WindowsInsidersCommand, &cfg.Commands.NativeInsiders)
		migrate("virtualized_stable", opts.WSLCommand, &cfg.Commands.VirtualizedStable)
		migrate("virtualized_insiders", opts.WSLInsidersCommand, &cfg.Commands.VirtualizedInsiders)
	}
	if !present.has("last_selected_edition") && legacy.LastSelectedOption == "insiders" {
		cfg.LastSelectedEdition = types.Insiders
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}
	if c.WindowSize.Width < 0 || c.WindowSize.Height < 0 {
		return fmt.Errorf("window size must not be negative")
	}
	if c.ResizeThreshold < 0 {
		return fmt.Errorf("resize threshold must be >= 0")
	}
	return nil
}

// Root returns the workspace root configured for env.
func (c *Config) Root(env types.Environment) string {
	if env == types.Virtualized {
		return c.VirtualizedRoot
	}
	return c.NativeRoot
}

// Watching reports whether the workspace directory should be watched.
func (c *Config) Watching() bool {
	return c.WatchWorkspaces == nil || *c.WatchWorkspaces
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.WatchWorkspaces != nil {
		watch := *c.WatchWorkspaces
		out.WatchWorkspaces = &watch
	}
	return &out
}

// Equal reports whether two configurations hold the same values.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	a, b := *c, *other
	a.WatchWorkspaces, b.WatchWorkspaces = nil, nil
	return a == b && c.Watching() == other.Watching()
}

// Marshal encodes the configuration with a four-space indent.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Export renders the configuration as "json" or "yaml".
func Export(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "json", "":
		return Marshal(cfg)
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errors.Newf("unsupported format %q", format)
}

// SaveConfig writes cfg to path through a temporary file and a rename so a
// crash never leaves a truncated file behind. Parent directories are
// created as needed.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewConfigError("failed to create config directory", path, errors.ConfigWriteFailed, err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return errors.NewConfigError("failed to marshal config", path, errors.ConfigWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.NewConfigError("failed to write config file", path, errors.ConfigWriteFailed, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewConfigError("failed to write config file", path, errors.ConfigWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewConfigError("failed to write config file", path, errors.ConfigWriteFailed, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewConfigError("failed to replace config file", path, errors.ConfigWriteFailed, err)
	}
	return nil
}
