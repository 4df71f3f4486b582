// Package styles holds the shared colors and lipgloss styles of the form.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Instagram-ish magenta accent
	ColorAccent = lipgloss.Color("205")

	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	ColorError   = lipgloss.Color("196")
	ColorWarning = lipgloss.Color("214")
	ColorSuccess = lipgloss.Color("42")

	ColorPlaceholder = lipgloss.Color("240")

	ColorBorder      = lipgloss.Color("205") // Focused border (matches accent)
	ColorBorderMuted = lipgloss.Color("62")
)

// Panel/Box styles
var (
	// BoxStyle frames a focused panel
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// BoxStyleMuted frames an unfocused panel
	BoxStyleMuted = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderMuted).
			Padding(0, 1)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Bold(true)

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)
)

// Buttons
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Background(ColorBorderMuted).
			Padding(0, 2)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorTextBright).
				Background(ColorAccent).
				Padding(0, 2).
				Bold(true)
)

// Feedback styles
var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// FooterStyle for key hints
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Header styles
var (
	HeaderBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99"))

	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("219")).
				Bold(true)

	HeaderKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	HeaderVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)
