package speech

import (
	"fmt"
	"strings"
	"time"
)

// Audio backends.
const (
	BackendMock = "mock"
	BackendOto  = "oto"
)

// Config contains all speech playback options.
type Config struct {
	// Scheduling
	ClipPadding      time.Duration `yaml:"clip_padding"`
	TickRate         int           `yaml:"tick_rate"`
	DefaultAnimation string        `yaml:"default_animation"`

	Audio   AudioConfig   `yaml:"audio"`
	Pose    PoseConfig    `yaml:"pose"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// AudioConfig selects and configures the audio backend.
type AudioConfig struct {
	Backend    string  `yaml:"backend"`
	ClipsDir   string  `yaml:"clips_dir"`
	SampleRate int     `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	Volume     float64 `yaml:"volume"`
	CacheMB    int     `yaml:"cache_mb"`
}

// PoseConfig configures the mouth pose animator.
type PoseConfig struct {
	Parameter string  `yaml:"parameter"`
	Smoothing float64 `yaml:"smoothing"`
}

// CatalogConfig locates the clip manifest.
type CatalogConfig struct {
	Manifest string `yaml:"manifest"`
	Watch    bool   `yaml:"watch"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ClipPadding:      DefaultClipPadding,
		TickRate:         30,
		DefaultAnimation: DefaultAnimation,

		Audio: AudioConfig{
			Backend:    BackendMock,
			SampleRate: 22050,
			Channels:   1,
			Volume:     1.0,
			CacheMB:    64,
		},
		Pose: PoseConfig{
			Parameter: "face_speak",
			Smoothing: 12.0,
		},
		Catalog: CatalogConfig{
			Manifest: "clips.yml",
		},
	}
}

// TickInterval returns the time between host ticks.
func (c *Config) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.TickRate)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ClipPadding <= 0 || c.ClipPadding > 5*time.Second {
		return fmt.Errorf("%w: must be between 0 and 5s, got %v", ErrInvalidPadding, c.ClipPadding)
	}

	if c.TickRate < 1 || c.TickRate > 240 {
		return fmt.Errorf("%w: must be between 1 and 240, got %d", ErrInvalidTickRate, c.TickRate)
	}

	if c.DefaultAnimation == "" {
		c.DefaultAnimation = DefaultAnimation
	}

	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.Pose.Validate(); err != nil {
		return fmt.Errorf("pose config: %w", err)
	}

	return nil
}

// Validate checks if the audio configuration is valid.
func (c *AudioConfig) Validate() error {
	validBackends := []string{BackendMock, BackendOto}
	backendValid := false
	for _, b := range validBackends {
		if strings.EqualFold(c.Backend, b) {
			backendValid = true
			c.Backend = strings.ToLower(c.Backend)
			break
		}
	}
	if !backendValid {
		return fmt.Errorf("%w %q: must be one of %v", ErrUnknownBackend, c.Backend, validBackends)
	}

	validSampleRates := []int{22050, 24000, 44100, 48000}
	sampleRateValid := false
	for _, sr := range validSampleRates {
		if c.SampleRate == sr {
			sampleRateValid = true
			break
		}
	}
	if !sampleRateValid {
		return fmt.Errorf("%w %d: must be one of %v", ErrInvalidSampleRate, c.SampleRate, validSampleRates)
	}

	if c.Channels != 1 && c.Channels != 2 {
		return fmt.Errorf("%w: must be 1 or 2, got %d", ErrInvalidChannels, c.Channels)
	}

	if c.Volume < 0.0 || c.Volume > 1.0 {
		return fmt.Errorf("%w: must be between 0.0 and 1.0, got %f", ErrInvalidVolume, c.Volume)
	}

	if c.CacheMB < 0 || c.CacheMB > 4096 {
		return fmt.Errorf("%w: must be between 0 and 4096 MB, got %d", ErrInvalidCacheSize, c.CacheMB)
	}

	return nil
}

// Validate checks if the pose configuration is valid.
func (c *PoseConfig) Validate() error {
	if c.Parameter == "" {
		return ErrMissingParameter
	}
	if c.Smoothing < 0 {
		return fmt.Errorf("%w: must not be negative, got %f", ErrInvalidSmoothing, c.Smoothing)
	}
	return nil
}

// SchedulerOptions converts the config into scheduler options.
func (c *Config) SchedulerOptions() []Option {
	defaultAnimation := c.DefaultAnimation
	return []Option{
		WithPadding(c.ClipPadding),
		WithAnimationMapper(func(clip Clip) string {
			if clip.Animation != "" {
				return clip.Animation
			}
			if defaultAnimation != "" {
				return defaultAnimation
			}
			return DefaultAnimation
		}),
	}
}
