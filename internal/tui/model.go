package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/hpgo/internal/affordability"
	"github.com/rgehrsitz/hpgo/internal/calculation"
	"github.com/rgehrsitz/hpgo/internal/config"
	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/rgehrsitz/hpgo/internal/transform"
)

// Model is the explorer state: a base plan, the sliders applied on top of
// it, and the latest projection of the result.
type Model struct {
	planPath  string
	engine    *calculation.CalculationEngine
	maxViable int

	base        domain.Plan
	loaded      bool
	assumptions []assumption
	focus       int

	// Latest projection; seq is the slider state it must match
	seq        int
	plan       domain.Plan
	rows       []domain.ProjectionRow
	assessment affordability.Assessment

	table table.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	err error
}

// NewModel creates an explorer for the plan file at planPath
func NewModel(planPath string, engine *calculation.CalculationEngine, maxViable int) Model {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	return Model{
		planPath:  planPath,
		engine:    engine,
		maxViable: maxViable,
		table:     newProjectionTable(),
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     100,
		height:    32,
	}
}

// Init loads the plan file
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath, time.Now())
}

func loadPlanCmd(path string, asOf time.Time) tea.Cmd {
	return func() tea.Msg {
		plan, err := config.NewInputParser().LoadPlan(path, asOf)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Plan: plan}
	}
}

// recalculate bumps the sequence and returns a command projecting the
// current slider state
func (m *Model) recalculate() tea.Cmd {
	m.seq++
	return recalculateCmd(m.seq, m.engine, m.base, transformsFor(m.assumptions), m.maxViable)
}

func recalculateCmd(seq int, engine *calculation.CalculationEngine, base domain.Plan, transforms []transform.PlanTransform, maxViable int) tea.Cmd {
	return func() tea.Msg {
		plan, err := transform.ApplyTransforms(base, transforms)
		if err != nil {
			return ProjectionUpdatedMsg{Seq: seq, Err: err}
		}
		rows := engine.Project(plan, 0)
		return ProjectionUpdatedMsg{
			Seq:        seq,
			Plan:       plan,
			Rows:       rows,
			Assessment: affordability.Assess(plan, rows, maxViable),
		}
	}
}

func (m *Model) setFocus(i int) {
	if len(m.assumptions) == 0 {
		return
	}
	n := len(m.assumptions)
	i = ((i % n) + n) % n
	m.assumptions[m.focus].slider.SetFocused(false)
	m.focus = i
	m.assumptions[m.focus].slider.SetFocused(true)
}

func (m *Model) resetAssumptions() {
	m.assumptions = newAssumptions(m.base)
	m.focus = 0
	if len(m.assumptions) > 0 {
		m.assumptions[0].slider.SetFocused(true)
	}
}
