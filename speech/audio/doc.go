// Package audio provides audio targets for the speech scheduler.
//
// Player emits PCM clips through the system audio device using oto.
// MockTarget records emissions without producing sound and is used by tests
// and by headless runs without an audio device.
package audio
