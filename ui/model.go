package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dgnsrekt/speechclip/speech/catalog"
	"github.com/dgnsrekt/speechclip/speech/ticker"
	"github.com/muesli/reflow/truncate"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#1C8760", Dark: "#89F0CB"})

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"})

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#656565", Dark: "#7D7D7D"})

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"})
)

type tickMsg time.Time

type statusMessageTimeoutMsg struct{}

// PoseReader exposes the animated mouth value for display.
type PoseReader interface {
	Get(name string) (float64, bool)
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTickRate sets the interval between scheduler ticks.
func WithTickRate(rate time.Duration) ModelOption {
	return func(m *Model) {
		if rate > 0 {
			m.rate = rate
		}
	}
}

// WithPose shows the value of parameter read from r.
func WithPose(r PoseReader, parameter string) ModelOption {
	return func(m *Model) {
		m.pose = r
		m.parameter = parameter
	}
}

// WithClipboard replaces the function used to copy asset ids.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) {
		if fn != nil {
			m.copy = fn
		}
	}
}

// Model is the bubbletea model driving a scheduler from the tea event loop.
// Every tick message advances the scheduler by the time since the previous
// tick.
type Model struct {
	cfg       Config
	scheduler *speech.Scheduler
	store     *catalog.Store
	pose      PoseReader
	parameter string
	rate      time.Duration
	copy      func(string) error

	keys   KeyMap
	help   help.Model
	status *StatusDisplay

	cursor   int
	width    int
	lastTick time.Time
	message  string
}

// NewModel creates a model for scheduler with clips listed from store.
func NewModel(cfg Config, scheduler *speech.Scheduler, store *catalog.Store, opts ...ModelOption) Model {
	m := Model{
		cfg:       cfg,
		scheduler: scheduler,
		store:     store,
		rate:      ticker.DefaultRate,
		copy:      clipboard.WriteAll,
		keys:      DefaultKeyMap,
		help:      help.New(),
		status:    NewStatusDisplay(cfg.ProgressWidth),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

func tick(rate time.Duration) tea.Cmd {
	return tea.Tick(rate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick(m.rate)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.advance(time.Time(msg))
		return m, tick(m.rate)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case statusMessageTimeoutMsg:
		m.message = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// advance feeds the measured delta to the scheduler and the pose animator.
// The first tick only records the time.
func (m *Model) advance(now time.Time) {
	var delta time.Duration
	if !m.lastTick.IsZero() {
		delta = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.scheduler.Update(delta)
	m.scheduler.UpdatePose(delta)
	m.refreshStatus()
}

func (m *Model) refreshStatus() {
	m.status.Update(m.scheduler.Snapshot())
	if m.pose != nil {
		v, _ := m.pose.Get(m.parameter)
		m.status.SetMouth(v)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.clipNames()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(names)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Queue):
		clip, err := m.selected(names)
		if err != nil {
			return m, m.showStatusMessage(err.Error())
		}
		m.scheduler.QueueClip(clip)
		m.refreshStatus()
		return m, m.showStatusMessage(fmt.Sprintf("Queued %s (%d pending)", clip, m.scheduler.Pending()))

	case key.Matches(msg, m.keys.PlayNow):
		clip, err := m.selected(names)
		if err != nil {
			return m, m.showStatusMessage(err.Error())
		}
		m.scheduler.PlayClip(clip)
		m.refreshStatus()
		return m, m.showStatusMessage("Playing " + clip.String())

	case key.Matches(msg, m.keys.Clear):
		n := m.scheduler.Pending()
		m.scheduler.ClearQueue()
		m.refreshStatus()
		return m, m.showStatusMessage(fmt.Sprintf("Cleared %d queued clips", n))

	case key.Matches(msg, m.keys.Copy):
		clip, ok := m.scheduler.CurrentClip()
		if !ok {
			return m, m.showStatusMessage("Nothing playing")
		}
		if err := m.copy(clip.Asset); err != nil {
			log.Warn("Unable to copy asset", "asset", clip.Asset, "error", err)
			return m, m.showStatusMessage("Copy failed")
		}
		return m, m.showStatusMessage("Copied " + clip.Asset)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m *Model) showStatusMessage(msg string) tea.Cmd {
	m.message = msg
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusMessageTimeoutMsg{}
	})
}

func (m Model) clipNames() []string {
	if m.store == nil {
		return nil
	}
	c := m.store.Load()
	if c == nil {
		return nil
	}
	return c.Names()
}

var errNoClips = errors.New("no clips in catalog")

func (m Model) selected(names []string) (speech.Clip, error) {
	if len(names) == 0 {
		return speech.Clip{}, errNoClips
	}
	idx := min(m.cursor, len(names)-1)
	return m.store.Load().Lookup(names[idx])
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("speechclip"))
	b.WriteString("\n\n")

	names := m.clipNames()
	if len(names) == 0 {
		b.WriteString(dimStyle.Render("  no clips"))
		b.WriteString("\n")
	}
	for i, name := range names {
		line := name
		if m.width > 8 {
			line = truncate.StringWithTail(line, uint(m.width-4), ellipsis)
		}
		if i == min(m.cursor, len(names)-1) {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status.DetailedStatus(m.width))
	b.WriteString("\n")

	if m.cfg.ShowQueue {
		if queued := m.scheduler.Queued(); len(queued) > 0 {
			b.WriteString("\n")
			for i, clip := range queued {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  %d. %s", i+1, clip)))
				b.WriteString("\n")
			}
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// Status returns the model's status display.
func (m Model) Status() *StatusDisplay {
	return m.status
}
