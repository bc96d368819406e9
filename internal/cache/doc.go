// Package cache provides a size-bounded in-memory LRU cache for decoded
// audio data.
package cache
