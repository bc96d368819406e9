package speech

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfigFromViper loads speech configuration from Viper.
func LoadConfigFromViper() (Config, error) {
	return LoadConfig(viper.GetViper())
}

// LoadConfig loads speech configuration from v, keeping defaults for unset keys.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	if v.IsSet("clip_padding") {
		cfg.ClipPadding = v.GetDuration("clip_padding")
	}
	if v.IsSet("tick_rate") {
		cfg.TickRate = v.GetInt("tick_rate")
	}
	if v.IsSet("default_animation") {
		cfg.DefaultAnimation = v.GetString("default_animation")
	}

	// Audio settings
	if v.IsSet("audio.backend") {
		cfg.Audio.Backend = v.GetString("audio.backend")
	}
	if v.IsSet("audio.clips_dir") {
		cfg.Audio.ClipsDir = v.GetString("audio.clips_dir")
	}
	if v.IsSet("audio.sample_rate") {
		cfg.Audio.SampleRate = v.GetInt("audio.sample_rate")
	}
	if v.IsSet("audio.channels") {
		cfg.Audio.Channels = v.GetInt("audio.channels")
	}
	if v.IsSet("audio.volume") {
		cfg.Audio.Volume = v.GetFloat64("audio.volume")
	}
	if v.IsSet("audio.cache_mb") {
		cfg.Audio.CacheMB = v.GetInt("audio.cache_mb")
	}

	// Pose settings
	if v.IsSet("pose.parameter") {
		cfg.Pose.Parameter = v.GetString("pose.parameter")
	}
	if v.IsSet("pose.smoothing") {
		cfg.Pose.Smoothing = v.GetFloat64("pose.smoothing")
	}

	// Catalog settings
	if v.IsSet("catalog.manifest") {
		cfg.Catalog.Manifest = v.GetString("catalog.manifest")
	}
	if v.IsSet("catalog.watch") {
		cfg.Catalog.Watch = v.GetBool("catalog.watch")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return cfg, nil
}
