package audio

import "errors"

var (
	// ErrAssetNotFound is returned when no PCM data exists for an asset.
	ErrAssetNotFound = errors.New("audio asset not found")

	// ErrInvalidAsset is returned for asset names that escape the clips directory.
	ErrInvalidAsset = errors.New("invalid audio asset name")

	// ErrPlayerClosed is returned when a closed player is asked to load audio.
	ErrPlayerClosed = errors.New("audio player is closed")
)
