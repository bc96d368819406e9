package speech

// DefaultAnimation is the mouth animation used for clips that do not name one.
const DefaultAnimation = "talk"

// Clip identifies a speech audio asset and the animation that accompanies it.
type Clip struct {
	Name      string // Catalog key
	Asset     string // Audio asset identifier
	Animation string // Mouth animation, empty for the default
}

// String returns the clip name, or the asset when the clip has no name.
func (c Clip) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Asset
}

// AnimationFor maps a clip to the mouth animation that should play with it.
func AnimationFor(clip Clip) string {
	if clip.Animation != "" {
		return clip.Animation
	}
	return DefaultAnimation
}
