// Package pose animates a single pose parameter, such as how far a
// speaker's mouth is open, from keyframed curves.
package pose
