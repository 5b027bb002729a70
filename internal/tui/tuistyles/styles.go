// Package tuistyles holds the explorer's palette and shared lipgloss styles.
// It has no dependencies on other tui packages so components can import it.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorAccent  = lipgloss.Color("#F25D94")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorDanger  = lipgloss.Color("#FF5F87")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorInfo    = lipgloss.Color("#5FAFFF")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#626262")
	ColorBorder     = lipgloss.Color("#3C3C3C")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorInfo)

	SliderTrackStyle = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)
)

// Tone colours a value by whether it is good news for the household
type Tone int

const (
	ToneNeutral Tone = iota
	ToneGood
	ToneBad
)

// ToneStyle returns the value style for a tone
func ToneStyle(t Tone) lipgloss.Style {
	switch t {
	case ToneGood:
		return MetricValueStyle.Foreground(ColorSuccess)
	case ToneBad:
		return MetricValueStyle.Foreground(ColorDanger)
	default:
		return MetricValueStyle
	}
}

// ToneOf maps the sign of an amount onto a tone
func ToneOf(v decimal.Decimal) Tone {
	switch v.Sign() {
	case 1:
		return ToneGood
	case -1:
		return ToneBad
	default:
		return ToneNeutral
	}
}
