package audio

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/internal/cache"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/ebitengine/oto/v3"
)

var _ speech.AudioTarget = (*Player)(nil)

// bytesPerSample is fixed by oto.FormatSignedInt16LE.
const bytesPerSample = 2

// DefaultCacheSize bounds decoded PCM kept in memory.
const DefaultCacheSize = 64 << 20

// PlayerConfig contains configuration for the audio player.
type PlayerConfig struct {
	SampleRate int     // 22050, 24000, 44100 or 48000 Hz
	Channels   int     // 1 = mono, 2 = stereo
	Volume     float64 // 0.0 to 1.0
	CacheSize  int64   // Bytes of decoded PCM to keep, 0 for DefaultCacheSize
}

// DefaultPlayerConfig returns the default player configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		SampleRate: 22050, // Typical speech sample rate
		Channels:   1,
		Volume:     1.0,
		CacheSize:  DefaultCacheSize,
	}
}

// Player implements speech.AudioTarget on the system audio device.
// Every EmitSound starts an independent oto player, so overlapping emissions
// of different assets play together.
type Player struct {
	context *oto.Context
	source  Source
	config  PlayerConfig
	logger  *log.Logger

	mu     sync.Mutex
	pcm    *cache.MemoryCache
	active map[string][]*oto.Player
	closed bool
}

// NewPlayer creates an audio player that loads clips from source.
// Only one oto context may exist per process.
func NewPlayer(config PlayerConfig, source Source, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}

	op := &oto.NewContextOptions{
		SampleRate:   config.SampleRate,
		ChannelCount: config.Channels,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	// Wait for context to be ready
	<-readyChan

	if config.CacheSize <= 0 {
		config.CacheSize = DefaultCacheSize
	}

	return &Player{
		context: ctx,
		source:  source,
		config:  config,
		logger:  logger,
		pcm:     cache.NewMemoryCache(config.CacheSize),
		active:  make(map[string][]*oto.Player),
	}, nil
}

// EmitSound starts playing asset. Load failures are logged and ignored.
func (p *Player) EmitSound(asset string) {
	data, err := p.load(asset)
	if err != nil {
		p.logger.Warn("Unable to emit sound", "asset", asset, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.pruneLocked()

	player := p.context.NewPlayer(bytes.NewReader(data))
	player.SetVolume(p.config.Volume)
	player.Play()

	p.active[asset] = append(p.active[asset], player)
	p.logger.Debug("Emitted sound", "asset", asset, "bytes", len(data))
}

// StopSound stops every active player for asset.
func (p *Player) StopSound(asset string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	players := p.active[asset]
	delete(p.active, asset)

	for _, player := range players {
		p.closePlayer(asset, player)
	}

	if len(players) > 0 {
		p.logger.Debug("Stopped sound", "asset", asset, "players", len(players))
	}
}

// SoundDuration returns the length of asset's PCM data, or 0 if it cannot
// be loaded.
func (p *Player) SoundDuration(asset string) time.Duration {
	data, err := p.load(asset)
	if err != nil {
		p.logger.Warn("Unable to resolve sound duration", "asset", asset, "error", err)
		return 0
	}
	return PCMDuration(len(data), p.config.SampleRate, p.config.Channels)
}

// Close stops all playback. The oto context itself lives until process exit.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for asset, players := range p.active {
		for _, player := range players {
			p.closePlayer(asset, player)
		}
	}
	p.active = make(map[string][]*oto.Player)
	p.pcm.Clear()
	p.closed = true

	return nil
}

// load returns PCM data for asset, reading it from the source unless it is
// still cached. Evicted data stays valid for players already reading it.
func (p *Player) load(asset string) ([]byte, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrPlayerClosed
	}
	if data, ok := p.pcm.Get(asset); ok {
		return data, nil
	}

	data, err := p.source.Load(asset)
	if err != nil {
		return nil, err
	}

	// Trim a trailing partial frame so oto never reads half a sample.
	frame := bytesPerSample * p.config.Channels
	data = data[:len(data)-len(data)%frame]

	if err := p.pcm.Put(asset, data); err != nil {
		p.logger.Debug("Not caching sound", "asset", asset, "bytes", len(data), "error", err)
	}

	return data, nil
}

// pruneLocked closes players that have finished on their own.
// Caller must hold p.mu.
func (p *Player) pruneLocked() {
	for asset, players := range p.active {
		kept := players[:0]
		for _, player := range players {
			if player.IsPlaying() {
				kept = append(kept, player)
				continue
			}
			p.closePlayer(asset, player)
		}
		if len(kept) == 0 {
			delete(p.active, asset)
		} else {
			p.active[asset] = kept
		}
	}
}

func (p *Player) closePlayer(asset string, player *oto.Player) {
	player.Pause()
	if err := player.Close(); err != nil {
		p.logger.Debug("Failed to close oto player", "asset", asset, "error", err)
	}
}

// PCMDuration returns the playing time of n bytes of 16-bit PCM.
func PCMDuration(n, sampleRate, channels int) time.Duration {
	if n <= 0 || sampleRate <= 0 || channels <= 0 {
		return 0
	}
	samples := n / (channels * bytesPerSample)
	return time.Duration(samples) * time.Second / time.Duration(sampleRate)
}
