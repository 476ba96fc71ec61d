package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ufmtooling/shapecanvas/pkg/layout"
	"github.com/ufmtooling/shapecanvas/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// strategyChoice pairs a strategy name with a short description for the
// picker. Overlaps is the overlap count the strategy would produce for the
// scene being arranged; -1 means not computed.
type strategyChoice struct {
	Name        string
	Description string
	Overlaps    int
}

// strategyChoices lists the selectable layout strategies in display order.
var strategyChoices = []strategyChoice{
	{layout.StrategyGrid.String(), "uniform grid sized to the largest box", -1},
	{layout.StrategyHierarchical.String(), "levels derived from connector direction", -1},
	{layout.StrategyForce.String(), "force-directed simulation, clusters connected boxes", -1},
	{layout.StrategyCircular.String(), "boxes evenly spaced on a circle", -1},
}

// strategyChoicesFor previews every strategy against the scene and annotates
// each choice with the overlap count it would produce. Arranging in-process
// is cheap enough to run once per strategy for interactive use.
func strategyChoicesFor(sc *scene.Scene, cfg layout.Config) []strategyChoice {
	choices := make([]strategyChoice, len(strategyChoices))
	copy(choices, strategyChoices)

	for i := range choices {
		strat, err := layout.ParseStrategy(choices[i].Name)
		if err != nil {
			continue
		}
		elements, err := sc.Clone().Elements()
		if err != nil {
			continue
		}

		engine := layout.New()
		if sc.Canvas.Width > 0 && sc.Canvas.Height > 0 {
			engine.SetCanvasSize(sc.Canvas)
		}
		preview := cfg
		preview.Strategy = strat
		if res := engine.Arrange(elements, preview); res.Success {
			choices[i].Overlaps = engine.CountOverlaps(elements)
		}
	}
	return choices
}

// =============================================================================
// StrategyListModel - Interactive strategy selection
// =============================================================================

// StrategyListModel is the bubbletea model for interactive strategy selection.
type StrategyListModel struct {
	Choices  []strategyChoice
	Cursor   int
	Selected string
}

// NewStrategyListModel creates a strategy picker with the cursor on the
// currently configured strategy.
func NewStrategyListModel(current string, choices []strategyChoice) StrategyListModel {
	if len(choices) == 0 {
		choices = strategyChoices
	}
	m := StrategyListModel{Choices: choices}
	for i, c := range m.Choices {
		if c.Name == current {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m StrategyListModel) Init() tea.Cmd {
	return nil
}

func (m StrategyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Choices)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Choices[m.Cursor].Name
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m StrategyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Layout Strategy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, choice := range m.Choices {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		desc := choice.Description
		if choice.Overlaps == 0 {
			desc += " · no overlaps"
		} else if choice.Overlaps > 0 {
			desc += fmt.Sprintf(" · %d overlaps", choice.Overlaps)
		}

		line := fmt.Sprintf("%s%-13s %s", cursor, choice.Name, listDimStyle.Render(desc))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pickStrategy runs the interactive strategy picker and returns the chosen
// strategy name. An empty string means the user aborted.
func pickStrategy(current string, choices []strategyChoice) (string, error) {
	model, err := tea.NewProgram(NewStrategyListModel(current, choices)).Run()
	if err != nil {
		return "", err
	}
	final, ok := model.(StrategyListModel)
	if !ok {
		return "", nil
	}
	return final.Selected, nil
}
