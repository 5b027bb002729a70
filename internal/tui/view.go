package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/output"
	"github.com/rgehrsitz/hpgo/internal/tui/components"
	"github.com/rgehrsitz/hpgo/internal/tui/tuistyles"
)

const appTitle = "HPGO - Home Purchase Explorer"

func newProjectionTable() table.Model {
	columns := []table.Column{
		{Title: "Year", Width: 6},
		{Title: "House", Width: 10},
		{Title: "Savings", Width: 10},
		{Title: "Loan", Width: 10},
		{Title: "Payment", Width: 9},
		{Title: "Surplus", Width: 9},
		{Title: "Buffer", Width: 9},
		{Title: "OK", Width: 4},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(tuistyles.ColorForeground).
		Background(tuistyles.ColorPrimary)
	t.SetStyles(s)

	return t
}

func tableHeight(windowHeight int) int {
	h := windowHeight - 22
	if h < 4 {
		h = 4
	}
	return h
}

func projectionTableRows(rows []domain.ProjectionRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		ok := "no"
		if r.IsAffordable {
			ok = "yes"
		}
		out = append(out, table.Row{
			fmt.Sprintf("%d", r.Year),
			output.FormatCurrency(r.HousePrice),
			output.FormatCurrency(r.CumulativeSavings),
			output.FormatCurrency(r.LoanAmountNeeded),
			output.FormatAmount(r.MonthlyPayment),
			output.FormatAmount(r.MonthlySurplus),
			output.FormatAmount(r.Buffer),
			ok,
		})
	}
	return out
}

// View renders the explorer
func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + m.help.View(m.keys)
		}
		return tuistyles.SubtitleStyle.Render("Loading plan...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		tuistyles.ActiveBorderStyle.Render(m.renderSliders()),
		"  ",
		m.renderVerdict(),
	)

	sections := []string{m.renderTitleBar(), body, m.table.View()}
	if m.err != nil {
		sections = append(sections, tuistyles.ErrorStyle.Render("Error: "+m.err.Error()))
	}
	sections = append(sections, tuistyles.StatusBarStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	name := m.base.Name
	if name == "" {
		name = m.planPath
	}
	return tuistyles.TitleStyle.Render(appTitle) + " " +
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%s · target %d", name, m.plan.TargetYear()))
}

func (m Model) renderSliders() string {
	lines := make([]string, 0, len(m.assumptions))
	for i, a := range m.assumptions {
		if i == m.focus {
			lines = append(lines, a.slider.Render())
			continue
		}
		lines = append(lines, a.slider.RenderCompact())
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderVerdict() string {
	result := m.assessment.Result
	comparison := m.assessment.Comparison

	outcome := components.NewMetricCard("Outcome", string(result.Outcome)).WithTone(tuistyles.ToneBad)
	if result.IsOnTarget() {
		outcome.WithTone(tuistyles.ToneGood)
	}

	first := components.NewMetricCard("First Viable Year", output.FormatYear(result.FirstViableYear))
	if result.FirstViableYear != nil {
		first.WithNote(fmt.Sprintf("%+d vs target", *result.FirstViableYear-comparison.TargetYear))
	} else {
		first.WithTone(tuistyles.ToneBad).WithNote("not within horizon")
	}

	cards := []*components.MetricCard{outcome, first}

	if t := comparison.Target; t != nil {
		tone := tuistyles.ToneBad
		if t.IsAffordable {
			tone = tuistyles.ToneGood
		}
		cards = append(cards,
			components.NewMetricCard(fmt.Sprintf("Payment in %d", t.Year), output.FormatAmount(t.MonthlyPayment)).
				WithNote(fmt.Sprintf("loan %s", output.FormatCurrency(t.LoanAmount))),
			components.NewMetricCard("Buffer", output.FormatAmount(t.Buffer)).
				WithTone(tone).
				WithNote(fmt.Sprintf("LTV %s", output.FormatPercentage(t.LTVRatio))),
		)
	}

	return components.MetricGrid(cards, 2)
}
