package audio

import (
	"testing"
	"time"
)

func TestPCMDuration(t *testing.T) {
	tests := []struct {
		name       string
		bytes      int
		sampleRate int
		channels   int
		want       time.Duration
	}{
		{"one second mono", 44100 * 2, 44100, 1, time.Second},
		{"one second stereo", 48000 * 4, 48000, 2, time.Second},
		{"half second speech", 22050, 22050, 1, 500 * time.Millisecond},
		{"partial frame ignored", 22050*2 + 1, 22050, 1, time.Second},
		{"empty", 0, 22050, 1, 0},
		{"invalid rate", 100, 0, 1, 0},
		{"invalid channels", 100, 22050, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PCMDuration(tt.bytes, tt.sampleRate, tt.channels); got != tt.want {
				t.Errorf("PCMDuration(%d, %d, %d) = %v, want %v",
					tt.bytes, tt.sampleRate, tt.channels, got, tt.want)
			}
		})
	}
}

func TestDefaultPlayerConfig(t *testing.T) {
	cfg := DefaultPlayerConfig()
	if cfg.SampleRate != 22050 || cfg.Channels != 1 || cfg.Volume != 1.0 || cfg.CacheSize != DefaultCacheSize {
		t.Errorf("Unexpected default config: %+v", cfg)
	}
}
