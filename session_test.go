package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/speech/catalog"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const testManifest = `clips:
  - name: hello
    duration: 20ms
  - name: bye
    asset: vo/bye
    animation: whisper
    duration: 10ms
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clips.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unable to write manifest: %v", err)
	}
	return path
}

func testSession(t *testing.T) *session {
	t.Helper()

	cfg := speech.DefaultConfig()
	cfg.Catalog.Manifest = writeManifest(t, testManifest)
	cfg.TickRate = 240
	cfg.ClipPadding = 5 * time.Millisecond

	s, err := newSession(cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDefaultConfigMatchesDefaults(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}

	cfg, err := speech.LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != speech.DefaultConfig() {
		t.Errorf("default config file = %+v\nwant %+v", cfg, speech.DefaultConfig())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	t.Setenv("SPEECHCLIP_TEST_DIR", "/srv/clips")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"clips.yml", "clips.yml"},
		{"~/clips.yml", filepath.Join(home, "clips.yml")},
		{"$SPEECHCLIP_TEST_DIR/clips.yml", "/srv/clips/clips.yml"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewSessionErrors(t *testing.T) {
	cfg := speech.DefaultConfig()
	cfg.Catalog.Manifest = filepath.Join(t.TempDir(), "missing.yml")
	if _, err := newSession(cfg, nil); err == nil {
		t.Error("missing manifest should fail")
	}

	cfg.Catalog.Manifest = writeManifest(t, testManifest)
	cfg.Audio.Backend = "speakers"
	_, err := newSession(cfg, log.New(io.Discard))
	if !errors.Is(err, speech.ErrUnknownBackend) {
		t.Errorf("newSession() error = %v, want ErrUnknownBackend", err)
	}
}

func TestSessionMockDurationsFollowCatalog(t *testing.T) {
	s := testSession(t)

	s.scheduler.PlayClip(speech.Clip{Name: "bye", Asset: "vo/bye"})
	if got := s.scheduler.CurrentClipDuration(); got != 10*time.Millisecond {
		t.Errorf("duration = %v, want 10ms from the manifest", got)
	}

	c, err := catalog.New(catalog.Entry{Name: "bye", Asset: "vo/bye", Duration: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	s.store.Swap(c)

	s.scheduler.PlayClip(speech.Clip{Name: "bye", Asset: "vo/bye"})
	if got := s.scheduler.CurrentClipDuration(); got != time.Second {
		t.Errorf("duration after reload = %v, want 1s", got)
	}
}

func TestSessionAnimation(t *testing.T) {
	s := testSession(t)

	clips, err := s.resolve([]string{"bye", "hello"})
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	s.scheduler.PlayClip(clips[0])
	if got := s.animator.Animation(); got != "whisper" {
		t.Errorf("animation = %q, want whisper", got)
	}
	s.scheduler.PlayClip(clips[1])
	if got := s.animator.Animation(); got != "talk" {
		t.Errorf("animation = %q, want talk", got)
	}
}

func TestRunHeadless(t *testing.T) {
	s := testSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	if err := runHeadless(ctx, s, []string{"hello", "bye", "hello"}, &out); err != nil {
		t.Fatalf("runHeadless() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{"1st clip: hello", "2nd clip: bye", "3rd clip: hello"}
	if len(lines) != len(want) {
		t.Fatalf("output = %q", out.String())
	}
	for i, prefix := range want {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Errorf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}

	if s.scheduler.State() != speech.StateFinished || s.scheduler.Pending() != 0 {
		t.Errorf("scheduler not drained: %+v", s.scheduler.Snapshot())
	}
}

func TestRunHeadlessUnknownClip(t *testing.T) {
	s := testSession(t)

	err := runHeadless(context.Background(), s, []string{"helo"}, io.Discard)
	if !errors.Is(err, catalog.ErrClipNotFound) {
		t.Fatalf("runHeadless() error = %v, want ErrClipNotFound", err)
	}
	if !strings.Contains(err.Error(), "hello") {
		t.Errorf("error should suggest hello: %v", err)
	}
	if s.scheduler.Pending() != 0 {
		t.Error("nothing should be queued when a name is unknown")
	}
}

func TestRunHeadlessRequiresClips(t *testing.T) {
	s := testSession(t)
	if err := runHeadless(context.Background(), s, nil, io.Discard); err == nil {
		t.Error("runHeadless without clips should fail")
	}
}

func TestRunHeadlessCancelled(t *testing.T) {
	s := testSession(t)

	// Long enough that cancellation wins.
	c, err := catalog.New(catalog.Entry{Name: "hello", Duration: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	s.store.Swap(c)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = runHeadless(ctx, s, []string{"hello"}, io.Discard)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("runHeadless() error = %v, want DeadlineExceeded", err)
	}
}
