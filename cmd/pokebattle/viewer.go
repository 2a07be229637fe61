package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pokebattle/arena"
)

const (
	panelWidth  = 36
	logLines    = 12
	barWidth    = 28
	maxLogWidth = panelWidth*2 + 4
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true).
			Width(panelWidth).
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			Width(maxLogWidth).
			Padding(0, 1)

	faintedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

type keymap struct {
	Next key.Binding
	All  key.Binding
	Quit key.Binding
}

var keys = keymap{
	Next: key.NewBinding(
		key.WithKeys(" ", "enter", "right"),
		key.WithHelp("space", "next turn"),
	),
	All: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "play all"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// sideState is one combatant's replayed view of the battle so far.
type sideState struct {
	name   string
	maxHp  uint
	hp     uint
	status arena.StatusCondition
	bar    progress.Model
}

type viewer struct {
	result arena.BattleResult
	sides  [2]*sideState
	// shown counts how many records have been replayed into the view
	shown int
}

func newViewer(combatants [2]arena.Combatant, result arena.BattleResult) viewer {
	sides := [2]*sideState{}
	for i, c := range combatants {
		bar := progress.New(progress.WithDefaultGradient())
		bar.Width = barWidth
		bar.ShowPercentage = false

		sides[i] = &sideState{
			name:  c.Name(),
			maxHp: c.MaxHp,
			hp:    c.MaxHp,
			bar:   bar,
		}
	}

	return viewer{result: result, sides: sides}
}

func (m viewer) Init() tea.Cmd { return nil }

func (m viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.advance(1)
		case key.Matches(msg, keys.All):
			m.advance(len(m.result.Records) - m.shown)
		}
	}

	return m, nil
}

// advance replays the next n records into the side panels.
func (m *viewer) advance(n int) {
	for ; n > 0 && m.shown < len(m.result.Records); n-- {
		record := m.result.Records[m.shown]
		m.shown++

		switch record.Kind {
		case arena.RECORD_ATTACK:
			if side := m.side(record.Target); side != nil {
				side.hp = subtract(side.hp, record.Damage)
			}
		case arena.RECORD_STATUS_DAMAGE:
			if side := m.side(record.Actor); side != nil {
				side.hp = subtract(side.hp, record.Damage)
			}
		case arena.RECORD_STATUS_APPLIED:
			if side := m.side(record.Target); side != nil {
				side.status = arena.StatusFromAilment(record.Status)
			}
		}
	}
}

func (m *viewer) side(name string) *sideState {
	for _, side := range m.sides {
		if side.name == name {
			return side
		}
	}

	return nil
}

func (m viewer) View() string {
	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSide(m.sides[0]),
		"  ",
		m.renderSide(m.sides[1]),
	)

	view := lipgloss.JoinVertical(lipgloss.Left,
		panels,
		m.renderLog(),
		m.renderFooter(),
	)

	return view + "\n"
}

func (m viewer) renderSide(side *sideState) string {
	title := titleStyle.Render(side.name)
	if side.hp == 0 {
		title = faintedStyle.Render(side.name + " (fainted)")
	}

	hpLine := fmt.Sprintf("HP %d / %d", side.hp, side.maxHp)
	bar := side.bar.ViewAs(float64(side.hp) / float64(side.maxHp))

	statusLine := " "
	if side.status != arena.STATUS_NONE {
		statusLine = statusStyle.Render(side.status.String())
	}

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, hpLine, bar, statusLine))
}

func (m viewer) renderLog() string {
	start := m.shown - logLines
	if start < 0 {
		start = 0
	}

	lines := make([]string, 0, logLines)
	for _, record := range m.result.Records[start:m.shown] {
		lines = append(lines, record.Message)
	}
	if len(lines) == 0 {
		lines = append(lines, "Press space to begin.")
	}

	return logStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m viewer) renderFooter() string {
	if m.shown < len(m.result.Records) {
		return helpStyle.Render(fmt.Sprintf("turn %d/%d   space: next   a: play all   q: quit",
			m.currentTurn(), m.result.Turns))
	}

	outcome := fmt.Sprintf("Draw after %d turns.", m.result.Turns)
	if !m.result.Draw {
		outcome = fmt.Sprintf("%s wins in %d turns!", m.result.Winner, m.result.Turns)
	}

	return helpStyle.Render(outcome + "   q: quit")
}

func (m viewer) currentTurn() int {
	if m.shown == 0 {
		return 0
	}

	return m.result.Records[m.shown-1].Turn
}

func subtract(hp uint, damage uint) uint {
	if damage >= hp {
		return 0
	}

	return hp - damage
}
