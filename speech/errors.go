package speech

import "errors"

// Configuration errors.
var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidPadding    = errors.New("invalid clip padding")
	ErrInvalidTickRate   = errors.New("invalid tick rate")
	ErrUnknownBackend    = errors.New("unknown audio backend")
	ErrInvalidSampleRate = errors.New("invalid sample rate")
	ErrInvalidChannels   = errors.New("invalid number of channels")
	ErrInvalidVolume     = errors.New("invalid volume")
	ErrInvalidCacheSize  = errors.New("invalid audio cache size")
	ErrInvalidSmoothing  = errors.New("invalid pose smoothing")
	ErrMissingParameter  = errors.New("pose parameter missing")
)
