// Package queue holds pending speech clips in arrival order.
// It is owned by a single scheduler and performs no locking.
package queue
