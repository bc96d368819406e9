// Package speech schedules speech clips for a single speaker.
//
// A Scheduler plays one clip at a time. Each clip occupies its audible
// duration plus a short silence pad, after which the next queued clip may
// start. The host drives the scheduler once per tick with Update and
// UpdatePose; nothing in this package blocks, spawns goroutines or locks.
package speech
