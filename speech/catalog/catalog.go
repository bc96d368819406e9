package catalog

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dgnsrekt/speechclip/speech"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// maxSuggestions caps the names offered for an unknown clip.
const maxSuggestions = 3

// Entry is one clip in a manifest.
type Entry struct {
	Name      string        `yaml:"name"`
	Asset     string        `yaml:"asset"`
	Animation string        `yaml:"animation"`
	Duration  time.Duration `yaml:"duration"`
}

// Clip converts the entry into a speech clip.
func (e Entry) Clip() speech.Clip {
	return speech.Clip{
		Name:      e.Name,
		Asset:     e.Asset,
		Animation: e.Animation,
	}
}

type manifest struct {
	Clips []Entry `yaml:"clips"`
}

// Catalog is an immutable set of named clips.
type Catalog struct {
	entries map[string]Entry
	names   []string
}

// Load reads and parses the manifest at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read manifest: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse builds a catalog from manifest YAML.
func Parse(data []byte) (*Catalog, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return New(m.Clips...)
}

// New builds a catalog from entries.
func New(entries ...Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make(map[string]Entry, len(entries)),
		names:   make([]string, 0, len(entries)),
	}

	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: clip %d has no name", ErrInvalidManifest, i)
		}
		if e.Duration < 0 {
			return nil, fmt.Errorf("%w: clip %q has a negative duration", ErrInvalidManifest, e.Name)
		}
		if _, ok := c.entries[e.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateClip, e.Name)
		}
		if e.Asset == "" {
			e.Asset = e.Name
		}
		c.entries[e.Name] = e
		c.names = append(c.names, e.Name)
	}

	sort.Strings(c.names)
	return c, nil
}

// Lookup returns the clip called name. Unknown names yield a *NotFoundError
// carrying the closest matches.
func (c *Catalog) Lookup(name string) (speech.Clip, error) {
	if e, ok := c.entries[name]; ok {
		return e.Clip(), nil
	}
	return speech.Clip{}, &NotFoundError{Name: name, Suggestions: c.Suggest(name)}
}

// LookupAll resolves every name, failing on the first unknown one.
func (c *Catalog) LookupAll(names ...string) ([]speech.Clip, error) {
	clips := make([]speech.Clip, 0, len(names))
	for _, name := range names {
		clip, err := c.Lookup(name)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

// Entry returns the manifest entry called name.
func (c *Catalog) Entry(name string) (Entry, bool) {
	e, ok := c.entries[name]
	return e, ok
}

// Suggest returns up to three clip names that fuzzily match name.
func (c *Catalog) Suggest(name string) []string {
	if name == "" {
		return nil
	}

	matches := fuzzy.Find(name, c.names)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Names returns all clip names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Durations returns the manifest durations keyed by asset. Entries without a
// duration are omitted.
func (c *Catalog) Durations() map[string]time.Duration {
	out := make(map[string]time.Duration, len(c.entries))
	for _, e := range c.entries {
		if e.Duration > 0 {
			out[e.Asset] = e.Duration
		}
	}
	return out
}

// Len returns the number of clips.
func (c *Catalog) Len() int {
	return len(c.entries)
}
