package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/hpgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// ParameterSlider is a bounded plan assumption adjusted in fixed steps
type ParameterSlider struct {
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Places      int32  // decimals shown
	Unit        string // suffix such as "%" or "y"
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a slider; the value is clamped into range
func NewParameterSlider(label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Places: 1,
		Width:  24,
	}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

func (p *ParameterSlider) WithPlaces(places int32) *ParameterSlider {
	p.Places = places
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up, stopping at Max. It reports whether the value changed.
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement moves one step down, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue clamps v into [Min, Max] and reports whether the value changed
func (p *ParameterSlider) SetValue(v decimal.Decimal) bool {
	if v.LessThan(p.Min) {
		v = p.Min
	}
	if v.GreaterThan(p.Max) {
		v = p.Max
	}
	changed := !v.Equal(p.Value)
	p.Value = v
	return changed
}

// Fraction is the position of Value within the range, 0..1
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	f, _ := p.Value.Sub(p.Min).Div(span).Float64()
	return f
}

func (p *ParameterSlider) formatted(v decimal.Decimal) string {
	return v.StringFixed(p.Places) + p.Unit
}

// Render draws the label, value, bar and range on separate lines
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render(p.Label))
	b.WriteString("  ")
	b.WriteString(valueStyle.Render(p.formatted(p.Value)))
	b.WriteString("\n")
	b.WriteString(p.bar(p.Width))

	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	b.WriteString(" ")
	b.WriteString(muted.Render(fmt.Sprintf("%s ─ %s", p.formatted(p.Min), p.formatted(p.Max))))

	if p.IsFocused && p.Description != "" {
		b.WriteString("\n")
		b.WriteString(muted.Italic(true).Render(p.Description))
	}
	return b.String()
}

// RenderCompact returns a single line with a short bar
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.formatted(p.Value)), p.bar(10))
}

func (p *ParameterSlider) bar(width int) string {
	if width < 1 {
		width = 1
	}
	pos := int(p.Fraction()*float64(width-1) + 0.5)

	thumb := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumb = thumb.Foreground(tuistyles.ColorAccent)
	}

	var b strings.Builder
	b.WriteString("[")
	if pos > 0 {
		b.WriteString(thumb.Render(strings.Repeat("━", pos)))
	}
	b.WriteString(thumb.Render("●"))
	if rest := width - pos - 1; rest > 0 {
		b.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	b.WriteString("]")
	return b.String()
}
