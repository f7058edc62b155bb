package slumber

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the sleep configuration of a single world.
type Config struct {
	// Enabled turns night skipping on for the world.
	Enabled bool `yaml:"enabled"`
	// WakeUpHour is the hour of day, in [0, 24), players wake up at.
	// 6.5 is 06:30.
	WakeUpHour float32 `yaml:"wake-up-hour"`
	// SleepStartHour is the hour of day from which sleeping skips the night.
	SleepStartHour float32 `yaml:"sleep-start-hour"`
	// SleepPercentage is the share of eligible players, in [0, 100], that
	// must sleep. 0 means a single sleeper is enough.
	SleepPercentage int `yaml:"sleep-percentage"`
}

// DefaultConfig returns the configuration used for worlds without overrides.
func DefaultConfig() Config {
	return Config{
		Enabled:         true,
		WakeUpHour:      6,
		SleepStartHour:  18.5,
		SleepPercentage: 0,
	}
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if c.WakeUpHour < 0 || c.WakeUpHour >= 24 {
		return fmt.Errorf("wake-up-hour %v out of range [0, 24)", c.WakeUpHour)
	}
	if c.SleepStartHour < 0 || c.SleepStartHour >= 24 {
		return fmt.Errorf("sleep-start-hour %v out of range [0, 24)", c.SleepStartHour)
	}
	if c.SleepPercentage < 0 || c.SleepPercentage > 100 {
		return fmt.Errorf("sleep-percentage %d out of range [0, 100]", c.SleepPercentage)
	}
	return nil
}

// Settings holds the default configuration and per-world overrides keyed
// by world name.
type Settings struct {
	Default Config            `yaml:"default"`
	Worlds  map[string]Config `yaml:"worlds"`
}

// DefaultSettings returns Settings with DefaultConfig and no overrides.
func DefaultSettings() Settings {
	return Settings{Default: DefaultConfig()}
}

// For returns the configuration of the world with the given name.
func (s Settings) For(name string) Config {
	if c, ok := s.Worlds[name]; ok {
		return c
	}
	return s.Default
}

// Validate checks the default configuration and every override.
func (s Settings) Validate() error {
	if err := s.Default.Validate(); err != nil {
		return fmt.Errorf("default: %w", err)
	}
	for name, c := range s.Worlds {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("world %q: %w", name, err)
		}
	}
	return nil
}

// ParseSettings decodes YAML settings. Fields missing from the document
// keep their DefaultSettings values; fields missing from a world override
// keep the values of the decoded default section.
func ParseSettings(data []byte) (Settings, error) {
	var raw struct {
		Default yaml.Node            `yaml:"default"`
		Worlds  map[string]yaml.Node `yaml:"worlds"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}

	s := DefaultSettings()
	if !raw.Default.IsZero() {
		if err := raw.Default.Decode(&s.Default); err != nil {
			return Settings{}, fmt.Errorf("decode default: %w", err)
		}
	}
	if len(raw.Worlds) > 0 {
		s.Worlds = make(map[string]Config, len(raw.Worlds))
		for name, node := range raw.Worlds {
			c := s.Default
			if err := node.Decode(&c); err != nil {
				return Settings{}, fmt.Errorf("decode world %q: %w", name, err)
			}
			s.Worlds[name] = c
		}
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// LoadSettings reads settings from the YAML file at path. If the file does
// not exist, it is created with DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s := DefaultSettings()
		out, err := yaml.Marshal(s)
		if err != nil {
			return Settings{}, fmt.Errorf("encode default settings: %w", err)
		}
		if err := os.WriteFile(path, out, 0644); err != nil {
			return Settings{}, fmt.Errorf("write default settings: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return ParseSettings(data)
}
