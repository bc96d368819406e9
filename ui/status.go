package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dgnsrekt/speechclip/speech"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stateTitle = cases.Title(language.English)

// StatusDisplay renders scheduler status for the UI.
type StatusDisplay struct {
	state    speech.StateType
	clip     speech.Clip
	hasClip  bool
	duration time.Duration
	elapsed  time.Duration
	progress float64
	pending  int
	played   int
	mouth    float64

	bar progress.Model
}

// NewStatusDisplay creates a status display with a progress bar of the given
// width.
func NewStatusDisplay(barWidth int) *StatusDisplay {
	if barWidth < 10 {
		barWidth = 10
	}
	return &StatusDisplay{
		state: speech.StateIdle,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(barWidth),
		),
	}
}

// Update copies the displayed fields from a scheduler snapshot.
func (s *StatusDisplay) Update(snap speech.Snapshot) {
	s.state = snap.State
	s.clip = snap.Clip
	s.hasClip = snap.HasClip
	s.duration = snap.Duration
	s.elapsed = min(snap.Elapsed, snap.Duration)
	s.progress = snap.Progress
	s.pending = snap.Pending
	s.played = snap.Played
}

// SetMouth sets the displayed mouth parameter value.
func (s *StatusDisplay) SetMouth(v float64) {
	s.mouth = v
}

// Progress returns the displayed clip progress.
func (s *StatusDisplay) Progress() float64 {
	return s.progress
}

// IsActive reports whether a clip is playing.
func (s *StatusDisplay) IsActive() bool {
	return s.state == speech.StatePlaying
}

// StateLabel returns the title-cased state name.
func (s *StatusDisplay) StateLabel() string {
	return stateTitle.String(s.state.String())
}

// CompactStatus returns a one-line status for the status bar.
func (s *StatusDisplay) CompactStatus() string {
	if s.state == speech.StateIdle {
		return ""
	}

	statusStyle := lipgloss.NewStyle().Foreground(s.getStateColor())
	status := statusStyle.Render(fmt.Sprintf("%s %s", s.getStateIcon(), s.StateLabel()))

	if s.hasClip {
		status += " " + s.clip.String()
	}

	if s.pending > 0 {
		counterStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
		status += counterStyle.Render(fmt.Sprintf(" +%d", s.pending))
	}

	return status
}

// DetailedStatus returns a multi-line status panel.
func (s *StatusDisplay) DetailedStatus(width int) string {
	var lines []string

	headerStyle := lipgloss.NewStyle().Bold(true)
	lines = append(lines, headerStyle.Render("Speech"))

	stateStyle := lipgloss.NewStyle().Foreground(s.getStateColor())
	lines = append(lines, stateStyle.Render(fmt.Sprintf("State: %s %s", s.getStateIcon(), s.StateLabel())))

	if s.hasClip {
		name := s.clip.String()
		if width > 12 {
			name = truncate.StringWithTail(name, uint(width-8), ellipsis)
		}
		lines = append(lines, fmt.Sprintf("Clip:  %s (%s clip)", name, humanize.Ordinal(s.played)))
		lines = append(lines, fmt.Sprintf("Time:  %s / %s", formatDuration(s.elapsed), formatDuration(s.duration)))

		if width > 20 {
			lines = append(lines, s.bar.ViewAs(s.progress))
		}
	}

	lines = append(lines, fmt.Sprintf("Queue: %d pending", s.pending))
	lines = append(lines, fmt.Sprintf("Mouth: %.2f", s.mouth))

	return strings.Join(lines, "\n")
}

// ProgressBar returns the rendered progress bar, or "" when no clip is current.
func (s *StatusDisplay) ProgressBar() string {
	if !s.hasClip {
		return ""
	}
	return s.bar.ViewAs(s.progress)
}

func (s *StatusDisplay) getStateColor() lipgloss.Color {
	switch s.state {
	case speech.StatePlaying:
		return lipgloss.Color("#00FF00")
	case speech.StateFinished:
		return lipgloss.Color("#888888")
	default:
		return lipgloss.Color("#666666")
	}
}

func (s *StatusDisplay) getStateIcon() string {
	switch s.state {
	case speech.StatePlaying:
		return "▶"
	case speech.StateFinished:
		return "■"
	default:
		return "○"
	}
}

// formatDuration formats a duration as m:ss.t for display.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	tenths := int(d.Milliseconds()/100) % 10

	return fmt.Sprintf("%d:%02d.%d", minutes, seconds, tenths)
}
