package components

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/hpgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestParameterSlider_Bounds(t *testing.T) {
	s := NewParameterSlider("Loan rate", d(11), d(0), d(12), d(0.5))

	assert.True(t, s.Increment())
	assert.True(t, s.Increment())
	assert.Equal(t, "12", s.Value.String())

	assert.False(t, s.Increment(), "already at max")
	assert.Equal(t, "12", s.Value.String())

	assert.False(t, s.SetValue(d(40)))
	assert.True(t, s.SetValue(d(-3)))
	assert.True(t, s.Value.Equal(d(0)))
	assert.False(t, s.Decrement())
}

func TestParameterSlider_ClampsOnCreate(t *testing.T) {
	s := NewParameterSlider("Term", d(90), d(1), d(40), d(1))
	assert.Equal(t, "40", s.Value.String())
	assert.Equal(t, 1.0, s.Fraction())
}

func TestParameterSlider_Fraction(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"min", -10, 0},
		{"mid", 10, 0.5},
		{"max", 30, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewParameterSlider("Growth", d(tt.value), d(-10), d(30), d(1))
			assert.InDelta(t, tt.want, s.Fraction(), 1e-9)
		})
	}

	flat := NewParameterSlider("Fixed", d(3), d(3), d(3), d(1))
	assert.Equal(t, 0.0, flat.Fraction())
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("House growth", d(10), d(-10), d(30), d(0.5)).
		WithUnit("%").
		WithDescription("Yearly change in the target house price")

	compact := s.RenderCompact()
	assert.Contains(t, compact, "House growth:")
	assert.Contains(t, compact, "10.0%")
	assert.NotContains(t, compact, "\n")

	full := s.Render()
	assert.Contains(t, full, "-10.0% ─ 30.0%")
	assert.NotContains(t, full, "Yearly change", "description only shows when focused")

	s.SetFocused(true)
	assert.Contains(t, s.Render(), "Yearly change in the target house price")
	assert.Contains(t, s.Render(), "●")
}

func TestMetricCard(t *testing.T) {
	card := NewMetricCard("Buffer", "12.50").WithTone(tuistyles.ToneGood).WithNote("LTV 60.00%")

	out := card.Render()
	assert.Contains(t, out, "Buffer")
	assert.Contains(t, out, "12.50")
	assert.Contains(t, out, "LTV 60.00%")

	assert.Contains(t, card.RenderCompact(), "Buffer:")
	assert.Contains(t, card.RenderCompact(), "12.50")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 2))

	cards := []*MetricCard{
		NewMetricCard("A", "1"),
		NewMetricCard("B", "2"),
		NewMetricCard("C", "3"),
	}
	grid := MetricGrid(cards, 2)

	for _, want := range []string{"A", "B", "C"} {
		assert.Contains(t, grid, want)
	}
	// Two rows of bordered cards are taller than one
	assert.Greater(t, strings.Count(grid, "\n"), strings.Count(cards[0].Render(), "\n"))
}
