// Package tui provides the terminal now-playing view shown while a score
// plays: title, state badge, progress bar and the note under the playhead.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - consistent colors used throughout the TUI
var (
	PrimaryColor = lipgloss.Color("#00D7FF") // Cyan - primary brand, playing state
	SuccessColor = lipgloss.Color("#5AF78E") // Green - finished
	ErrorColor   = lipgloss.Color("#FF5C57") // Red - failed
	MutedColor   = lipgloss.Color("#6C7086") // Gray - pending, muted text
	BorderColor  = lipgloss.Color("#45475A") // Dark gray - borders, dividers
	TextColor    = lipgloss.Color("#CDD6F4") // Light gray - primary text
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	footerStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Padding(0, 1)
)

// Progress bar styles
var (
	progressBarFillStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	progressBarEmptyStyle = lipgloss.NewStyle().Foreground(MutedColor)
)

// State badge styles
var (
	stateReadyStyle    = lipgloss.NewStyle().Bold(true).Foreground(MutedColor)
	statePlayingStyle  = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	stateFinishedStyle = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	stateErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
)

// Status icons
const (
	IconPlaying  = "●"
	IconFinished = "✓"
	IconFailed   = "✗"
	IconPending  = "○"
)

// stateStyle returns the badge style for a playback state.
func stateStyle(state State) lipgloss.Style {
	switch state {
	case StatePlaying:
		return statePlayingStyle
	case StateFinished:
		return stateFinishedStyle
	case StateError:
		return stateErrorStyle
	default:
		return stateReadyStyle
	}
}

// stateIcon returns the icon shown next to a playback state.
func stateIcon(state State) string {
	switch state {
	case StatePlaying:
		return IconPlaying
	case StateFinished:
		return IconFinished
	case StateError:
		return IconFailed
	default:
		return IconPending
	}
}
