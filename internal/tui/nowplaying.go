package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/minicodemonkey/tune/internal/score"
)

// State represents where playback is.
type State int

const (
	StateReady State = iota
	StatePlaying
	StateFinished
	StateAborted
	StateError
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StatePlaying:
		return "Playing"
	case StateFinished:
		return "Finished"
	case StateAborted:
		return "Aborted"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// ProgressMsg reports how long playback has been running.
type ProgressMsg struct {
	Elapsed time.Duration
}

// FinishedMsg is sent when playback returns.
type FinishedMsg struct {
	Err error
}

// PlayFunc plays the score, reporting progress through onProgress, and
// returns when playback is complete.
type PlayFunc func(onProgress func(elapsed time.Duration)) error

// NowPlaying is the Bubble Tea model for the playback view.
type NowPlaying struct {
	title   string
	notes   []score.Note
	starts  []time.Duration // start time of each note
	total   time.Duration
	state   State
	elapsed time.Duration
	width   int
	err     error
}

// NewNowPlaying creates the view for notes played at tempo.
func NewNowPlaying(title string, notes []score.Note, tempo score.Tempo) *NowPlaying {
	m := &NowPlaying{
		title:  title,
		notes:  notes,
		starts: make([]time.Duration, len(notes)),
		state:  StateReady,
		width:  60,
	}
	for i := 1; i < len(notes); i++ {
		m.starts[i] = m.starts[i-1] + score.Duration(notes[i-1:i], tempo)
	}
	m.total = score.Duration(notes, tempo)
	return m
}

// State returns the current playback state.
func (m *NowPlaying) State() State { return m.state }

// Err returns the playback error, if any.
func (m *NowPlaying) Err() error { return m.err }

// CurrentNote returns the index of the note sounding at elapsed, or -1 when
// nothing is sounding.
func (m *NowPlaying) CurrentNote(elapsed time.Duration) int {
	if len(m.notes) == 0 || elapsed < 0 || elapsed >= m.total {
		return -1
	}
	lo, hi := 0, len(m.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if m.starts[mid] <= elapsed {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Init implements tea.Model.
func (m *NowPlaying) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *NowPlaying) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		// The terminal is in raw mode, so ctrl+c arrives as a key rather than a signal.
		if msg.String() == "ctrl+c" {
			m.state = StateAborted
			return m, tea.Quit
		}
	case ProgressMsg:
		m.state = StatePlaying
		m.elapsed = msg.Elapsed
	case FinishedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateFinished
			m.elapsed = m.total
		}
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *NowPlaying) View() string {
	inner := m.width - 4
	if inner < 20 {
		inner = 20
	}

	badge := stateStyle(m.state).Render(stateIcon(m.state) + " " + m.state.String())
	header := lipgloss.JoinHorizontal(lipgloss.Top, headerStyle.Render("♪ "+m.title), "  ", badge)

	var b strings.Builder
	b.WriteString(renderProgressBar(m.fraction(), inner))
	b.WriteString("\n")
	b.WriteString(textStyle.Render(fmt.Sprintf("%s / %s", formatClock(m.elapsed), formatClock(m.total))))
	b.WriteString("\n")

	if i := m.CurrentNote(m.elapsed); i >= 0 {
		b.WriteString(labelStyle.Render("Note") + " ")
		b.WriteString(textStyle.Render(fmt.Sprintf("%d/%d  %s  %.2f Hz", i+1, len(m.notes), m.notes[i], m.notes[i].Frequency())))
	} else {
		b.WriteString(labelStyle.Render("Notes") + " ")
		b.WriteString(textStyle.Render(fmt.Sprintf("%d", len(m.notes))))
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(stateErrorStyle.Render(m.err.Error()))
	}

	panel := panelStyle.Width(inner).Render(b.String())
	footer := footerStyle.Render("ctrl+c abort")
	return lipgloss.JoinVertical(lipgloss.Left, header, panel, footer) + "\n"
}

func (m *NowPlaying) fraction() float64 {
	if m.total <= 0 {
		return 1
	}
	f := float64(m.elapsed) / float64(m.total)
	if f > 1 {
		return 1
	}
	return f
}

// renderProgressBar draws a bar of width cells filled to fraction.
func renderProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return progressBarFillStyle.Render(strings.Repeat("█", filled)) +
		progressBarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Run shows m while play runs in the background and returns play's error.
// If the user aborts, Run returns immediately without waiting for playback.
func Run(m *NowPlaying, play PlayFunc, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)

	go func() {
		err := play(func(elapsed time.Duration) {
			p.Send(ProgressMsg{Elapsed: elapsed})
		})
		p.Send(FinishedMsg{Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(*NowPlaying).Err()
}
