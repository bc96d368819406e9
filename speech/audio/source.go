package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// PCM file extensions, in lookup order.
const (
	ExtCompressed = ".pcm.zst"
	ExtRaw        = ".pcm"
)

// Source provides raw 16-bit little endian PCM data for an asset.
type Source interface {
	Load(asset string) ([]byte, error)
}

// DirSource loads PCM clips from a directory. Asset "greet/hello" maps to
// greet/hello.pcm.zst or greet/hello.pcm under the directory.
type DirSource struct {
	dir     string
	decoder *zstd.Decoder
}

// NewDirSource creates a source rooted at dir.
func NewDirSource(dir string) (*DirSource, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &DirSource{dir: dir, decoder: decoder}, nil
}

// Dir returns the root directory.
func (s *DirSource) Dir() string {
	return s.dir
}

// Load reads the PCM data for asset, decompressing it if needed.
func (s *DirSource) Load(asset string) ([]byte, error) {
	rel := filepath.FromSlash(asset)
	if asset == "" || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAsset, asset)
	}
	base := filepath.Join(s.dir, rel)

	compressed, err := os.ReadFile(base + ExtCompressed)
	switch {
	case err == nil:
		data, err := s.decoder.DecodeAll(compressed, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", asset, err)
		}
		return data, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", asset, err)
	}

	data, err := os.ReadFile(base + ExtRaw)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, asset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", asset, err)
	}
	return data, nil
}

// Close releases the decoder.
func (s *DirSource) Close() {
	s.decoder.Close()
}
