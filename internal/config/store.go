package config

import (
	"os"

	"codelaunch/internal/errors"
	"codelaunch/internal/log"
)

// Store owns the in-memory configuration and the file it came from. All
// mutations go through Update so every change is persisted the same way.
type Store struct {
	path string
	cfg  *Config
}

// Load reads the configuration at path. When the file does not exist the
// defaults are written there and returned. A file that cannot be read or
// decoded is a ConfigError.
func Load(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.NewConfigError("error reading config file", path, errors.InvalidConfig, err)
		}
		cfg := New()
		if err := SaveConfig(cfg, path); err != nil {
			return nil, err
		}
		log.LogWithFields(log.F("path", path)).Info("created default configuration")
		return &Store{path: path, cfg: cfg}, nil
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	log.LogWithFields(log.F("path", path)).Debug("configuration loaded")
	return &Store{path: path, cfg: cfg}, nil
}

// NewStore wraps cfg without touching the disk until the first Update.
func NewStore(path string, cfg *Config) *Store {
	if cfg == nil {
		cfg = New()
	}
	return &Store{path: path, cfg: cfg}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Current returns a copy of the configuration.
func (s *Store) Current() *Config {
	return s.cfg.Clone()
}

// Update applies mutate to a copy of the configuration. If the result
// differs from the current value it is written to disk and becomes current;
// otherwise nothing is written. On a write failure the in-memory value is
// left unchanged.
func (s *Store) Update(mutate func(*Config)) error {
	next := s.cfg.Clone()
	mutate(next)
	if next.Equal(s.cfg) {
		return nil
	}
	if err := next.Validate(); err != nil {
		return errors.NewConfigError("invalid configuration", s.path, errors.InvalidConfig, err)
	}
	if err := SaveConfig(next, s.path); err != nil {
		return err
	}
	s.cfg = next
	log.LogWithFields(log.F("path", s.path)).Debug("configuration saved")
	return nil
}
