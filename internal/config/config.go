package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Audio backends understood by the output package.
const (
	BackendPortAudio = "portaudio"
	BackendSpeaker   = "speaker"
)

// AudioConfig holds output device settings.
type AudioConfig struct {
	Backend         string  `toml:"backend"` // "portaudio" or "speaker"
	Device          string  `toml:"device"`  // substring of the output device name; empty = default
	SampleRate      float64 `toml:"sample_rate"`
	FramesPerBuffer int     `toml:"frames_per_buffer"`
	Channels        int     `toml:"channels"`
	WrapPhase       bool    `toml:"wrap_phase"`
}

// ToneConfig holds the initial tone and the slider ranges.
type ToneConfig struct {
	Frequency         float64 `toml:"frequency"`
	Level             float64 `toml:"level"`
	MinFrequency      float64 `toml:"min_frequency"`
	MaxFrequency      float64 `toml:"max_frequency"`
	FrequencyMidpoint float64 `toml:"frequency_midpoint"`
	MaxLevel          float64 `toml:"max_level"`
}

// CustomTheme is a user-defined color palette.
type CustomTheme struct {
	Name       string `toml:"name"`
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Accent     string `toml:"accent"`
	Error      string `toml:"error"`
	Success    string `toml:"success"`
	Warning    string `toml:"warning"`
	Background string `toml:"background"`
	Text       string `toml:"text"`
	Dimmed     string `toml:"dimmed"`
	Separator  string `toml:"separator"`
}

// Config is the top-level configuration.
type Config struct {
	Theme        string        `toml:"theme"`
	Audio        AudioConfig   `toml:"audio"`
	Tone         ToneConfig    `toml:"tone"`
	CustomThemes []CustomTheme `toml:"custom_theme"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	return &Config{
		Theme: "synthwave",
		Audio: AudioConfig{
			Backend:         BackendPortAudio,
			Device:          "",
			SampleRate:      0,
			FramesPerBuffer: 0,
			Channels:        2,
			WrapPhase:       false,
		},
		Tone: ToneConfig{
			Frequency:         500,
			Level:             0.1,
			MinFrequency:      50,
			MaxFrequency:      5000,
			FrequencyMidpoint: 500,
			MaxLevel:          0.125,
		},
	}
}

// DefaultPath returns the default config file path (~/.config/sinetone/config.toml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sinetone", "config.toml")
}

// Validate reports every setting that would keep the app from starting.
// Initial tone values are left alone; the sliders bound them.
func (c *Config) Validate() error {
	var errs []error
	switch c.Audio.Backend {
	case BackendPortAudio, BackendSpeaker:
	default:
		errs = append(errs, fmt.Errorf("audio.backend: unknown backend %q", c.Audio.Backend))
	}
	if c.Audio.SampleRate < 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must not be negative, got %v", c.Audio.SampleRate))
	}
	if c.Audio.FramesPerBuffer < 0 {
		errs = append(errs, fmt.Errorf("audio.frames_per_buffer: must not be negative, got %d", c.Audio.FramesPerBuffer))
	}
	if c.Audio.Channels < 1 {
		errs = append(errs, fmt.Errorf("audio.channels: must be at least 1, got %d", c.Audio.Channels))
	}
	t := c.Tone
	if t.MinFrequency >= t.MaxFrequency {
		errs = append(errs, fmt.Errorf("tone: min_frequency %v must be below max_frequency %v", t.MinFrequency, t.MaxFrequency))
	} else if t.FrequencyMidpoint <= t.MinFrequency || t.FrequencyMidpoint >= t.MaxFrequency {
		errs = append(errs, fmt.Errorf("tone.frequency_midpoint: %v must lie between %v and %v", t.FrequencyMidpoint, t.MinFrequency, t.MaxFrequency))
	}
	if t.MaxLevel <= 0 {
		errs = append(errs, fmt.Errorf("tone.max_level: must be positive, got %v", t.MaxLevel))
	}
	return errors.Join(errs...)
}

// Save writes the config as TOML to the given path, creating parent
// directories if needed. The write is atomic: data is written to a
// temporary file and renamed into place.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".sinetone-config-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := toml.NewEncoder(tmp).Encode(cfg); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// Load reads the TOML config from path. If the file does not exist,
// it returns the default config without error.
func Load(path string) (*Config, error) {
	cfg := Default()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return cfg, nil
}
