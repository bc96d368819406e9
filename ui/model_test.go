package ui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/speech/audio"
	"github.com/dgnsrekt/speechclip/speech/catalog"
	"github.com/dgnsrekt/speechclip/speech/pose"
)

type modelFixture struct {
	model  Model
	target *audio.MockTarget
	sink   *pose.ValueSink
	copied []string
}

func newModelFixture(t *testing.T) *modelFixture {
	t.Helper()

	c, err := catalog.New(
		catalog.Entry{Name: "alpha", Duration: time.Second},
		catalog.Entry{Name: "beta", Animation: "shout", Duration: 500 * time.Millisecond},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}

	f := &modelFixture{
		target: audio.NewMockTarget(c.Durations()),
		sink:   pose.NewValueSink(),
	}
	animator := pose.NewAnimator("mouth", pose.DefaultLibrary(), f.sink, pose.WithSmoothing(0))
	scheduler := speech.NewScheduler(f.target, animator)

	f.model = NewModel(Config{ProgressWidth: 20, ShowQueue: true}, scheduler, catalog.NewStore(c),
		WithTickRate(10*time.Millisecond),
		WithPose(f.sink, "mouth"),
		WithClipboard(func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		}),
	)
	return f
}

func (f *modelFixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := f.model.Update(msg)
	m, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	f.model = m
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelInitStartsTicking(t *testing.T) {
	f := newModelFixture(t)
	if f.model.Init() == nil {
		t.Fatal("Init should schedule the first tick")
	}
}

func TestModelTickDrivesScheduler(t *testing.T) {
	f := newModelFixture(t)
	t0 := time.Unix(1000, 0)

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	if got := f.model.scheduler.Pending(); got != 1 {
		t.Fatalf("Pending() = %d after enter, want 1", got)
	}

	if cmd := f.send(t, tickMsg(t0)); cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if c, ok := f.model.scheduler.CurrentClip(); !ok || c.Name != "alpha" {
		t.Fatalf("current = %+v, want alpha", c)
	}

	f.send(t, tickMsg(t0.Add(500*time.Millisecond)))
	if got := f.model.Status().Progress(); got != 0.5 {
		t.Errorf("progress = %v, want 0.5", got)
	}

	f.send(t, tickMsg(t0.Add(590*time.Millisecond)))
	if v, _ := f.sink.Get("mouth"); v <= 0 {
		t.Errorf("mouth value = %v, want open while talking", v)
	}
}

func TestModelPlayNowPreempts(t *testing.T) {
	f := newModelFixture(t)

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.send(t, tickMsg(time.Unix(0, 0)))

	f.send(t, tea.KeyMsg{Type: tea.KeyDown})
	f.send(t, runes("p"))

	c, ok := f.model.scheduler.CurrentClip()
	if !ok || c.Name != "beta" {
		t.Fatalf("current = %+v, want beta", c)
	}
	if got := f.target.Stopped(); !slices.Equal(got, []string{"alpha"}) {
		t.Errorf("Stopped() = %v, want [alpha]", got)
	}
	if f.model.message != "Playing beta" {
		t.Errorf("message = %q", f.model.message)
	}
}

func TestModelCursorBounds(t *testing.T) {
	f := newModelFixture(t)

	f.send(t, tea.KeyMsg{Type: tea.KeyUp})
	if f.model.cursor != 0 {
		t.Errorf("cursor = %d, want 0", f.model.cursor)
	}

	for i := 0; i < 5; i++ {
		f.send(t, tea.KeyMsg{Type: tea.KeyDown})
	}
	if f.model.cursor != 1 {
		t.Errorf("cursor = %d, want 1", f.model.cursor)
	}
}

func TestModelClearQueue(t *testing.T) {
	f := newModelFixture(t)

	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.send(t, tickMsg(time.Unix(0, 0)))

	f.send(t, runes("c"))

	if got := f.model.scheduler.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
	if c, ok := f.model.scheduler.CurrentClip(); !ok || c.Name != "alpha" {
		t.Errorf("clear must keep the current clip, got %+v", c)
	}
	if f.model.message != "Cleared 1 queued clips" {
		t.Errorf("message = %q", f.model.message)
	}
}

func TestModelCopyAsset(t *testing.T) {
	f := newModelFixture(t)

	f.send(t, runes("y"))
	if len(f.copied) != 0 {
		t.Error("nothing should be copied while idle")
	}

	f.send(t, runes("p"))
	f.send(t, runes("y"))
	if !slices.Equal(f.copied, []string{"alpha"}) {
		t.Errorf("copied = %v, want [alpha]", f.copied)
	}
}

func TestModelQuit(t *testing.T) {
	f := newModelFixture(t)

	cmd := f.send(t, runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	f := newModelFixture(t)
	f.send(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	f.send(t, tickMsg(time.Unix(0, 0)))

	view := f.model.View()
	for _, want := range []string{"> alpha", "beta", "Playing", "1. alpha", "Queue: 1 pending"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q, got:\n%s", want, view)
		}
	}
}

func TestModelEmptyCatalog(t *testing.T) {
	c, err := catalog.New()
	if err != nil {
		t.Fatal(err)
	}
	s := speech.NewScheduler(audio.NewMockTarget(nil), nil)
	m := NewModel(Config{}, s, catalog.NewStore(c))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	if s.Pending() != 0 {
		t.Error("nothing should be queued from an empty catalog")
	}
	if m.message != errNoClips.Error() {
		t.Errorf("message = %q", m.message)
	}
	if !strings.Contains(m.View(), "no clips") {
		t.Error("view should say the catalog is empty")
	}
}
