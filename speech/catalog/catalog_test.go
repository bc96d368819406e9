package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dgnsrekt/speechclip/speech"
)

const testManifest = `
clips:
  - name: greet_hello
    asset: liz/greet_hello
    animation: talk
    duration: 1.8s
  - name: hello_again
    duration: 900ms
  - name: goodbye
    asset: liz/goodbye
    animation: whisper
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	wantNames := []string{"goodbye", "greet_hello", "hello_again"}
	if names := c.Names(); !slices.Equal(names, wantNames) {
		t.Errorf("Names() = %v, want %v", names, wantNames)
	}

	tests := []struct {
		name string
		want speech.Clip
	}{
		{"greet_hello", speech.Clip{Name: "greet_hello", Asset: "liz/greet_hello", Animation: "talk"}},
		{"hello_again", speech.Clip{Name: "hello_again", Asset: "hello_again"}},
		{"goodbye", speech.Clip{Name: "goodbye", Asset: "liz/goodbye", Animation: "whisper"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(tt.name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestDurations(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	durations := c.Durations()
	if len(durations) != 2 {
		t.Errorf("Durations() has %d entries, want 2: %v", len(durations), durations)
	}
	if got := durations["liz/greet_hello"]; got != 1800*time.Millisecond {
		t.Errorf("greet_hello duration = %v, want 1.8s", got)
	}
	if got := durations["hello_again"]; got != 900*time.Millisecond {
		t.Errorf("hello_again duration = %v, want 900ms", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  error
	}{
		{"not yaml", "clips: [", ErrInvalidManifest},
		{"missing name", "clips:\n  - asset: foo\n", ErrInvalidManifest},
		{"negative duration", "clips:\n  - name: a\n    duration: -1s\n", ErrInvalidManifest},
		{"duplicate", "clips:\n  - name: a\n  - name: a\n", ErrDuplicateClip},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.manifest))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseEmptyManifest(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLookupNotFoundSuggests(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	_, err = c.Lookup("helo")
	if !errors.Is(err, ErrClipNotFound) {
		t.Fatalf("Lookup error = %v, want ErrClipNotFound", err)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Lookup error should be a *NotFoundError, got %T", err)
	}
	if !slices.Contains(nf.Suggestions, "greet_hello") {
		t.Errorf("Suggestions = %v, want greet_hello among them", nf.Suggestions)
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Error() = %q, want a suggestion", err.Error())
	}

	_, err = c.Lookup("zzz")
	if !errors.As(err, &nf) || len(nf.Suggestions) != 0 {
		t.Errorf("Lookup(zzz) should have no suggestions, got %v", err)
	}
}

func TestLookupAll(t *testing.T) {
	c, err := Parse([]byte(testManifest))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	clips, err := c.LookupAll("goodbye", "greet_hello")
	if err != nil {
		t.Fatalf("LookupAll failed: %v", err)
	}
	if len(clips) != 2 || clips[0].Name != "goodbye" || clips[1].Name != "greet_hello" {
		t.Errorf("LookupAll returned %+v", clips)
	}

	if _, err := c.LookupAll("goodbye", "missing"); !errors.Is(err, ErrClipNotFound) {
		t.Errorf("LookupAll with unknown clip error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clips.yml")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("Load of missing manifest should fail")
	}
}
