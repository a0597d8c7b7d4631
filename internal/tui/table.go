package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avega-cr/tunelab/internal/tuning"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// The first four columns are sortable; the numeric tuning columns are not.
var sortColumns = []tuning.SortKey{
	tuning.SortByVariant,
	tuning.SortByMethod,
	tuning.SortByMode,
	tuning.SortByCriterion,
}

var columnTitles = []string{"Variante", "Método", "Modo", "Criterio", "Kp", "Ti", "Td", "β"}

var columnWidths = []int{11, 17, 10, 11, 10, 10, 10, 8}

type model struct {
	params tuning.ProcessParameters

	rows   tuning.ResultSet
	sorter tuning.Sorter

	rowCursor int
	colCursor int
	precision int

	width  int
	height int
}

// NewTableApp builds the interactive table over one evaluation, presented
// in the default multi-key order.
func NewTableApp(p tuning.ProcessParameters, results tuning.ResultSet, precision int) *model {
	if precision <= 0 {
		precision = 3
	}
	return &model{
		params:    p,
		rows:      tuning.SortDefault(results),
		precision: precision,
		width:     80,
		height:    24,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "escape":
		return m, tea.Quit
	case "up", "k":
		if m.rowCursor > 0 {
			m.rowCursor--
		}
	case "down", "j":
		if m.rowCursor < len(m.rows)-1 {
			m.rowCursor++
		}
	case "left", "h":
		if m.colCursor > 0 {
			m.colCursor--
		}
	case "right", "l":
		if m.colCursor < len(sortColumns)-1 {
			m.colCursor++
		}
	case "enter", "s", " ":
		m.sortBy(sortColumns[m.colCursor])
	case "1", "2", "3", "4":
		idx := int(msg.String()[0] - '1')
		m.colCursor = idx
		m.sortBy(sortColumns[idx])
	}
	return m, nil
}

// sortBy reorders the rows as currently displayed, so toggling the same
// column twice restores the exact previous order even across ties.
func (m *model) sortBy(key tuning.SortKey) {
	k, asc := m.sorter.Click(key)
	m.rows = tuning.Sort(m.rows, k, asc)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString("\n")
	title := fmt.Sprintf("K=%g  T=%g  a=%g  τ₀=%g", m.params.K, m.params.T, m.params.A, m.params.Tau0)
	b.WriteString("   " + cyan.Render("tunelab") + "  " + dim.Render(title) + "\n")
	b.WriteString(dimmer.Render("   "+strings.Repeat("─", tableWidth())) + "\n")

	b.WriteString("   " + m.headerLine() + "\n")

	for i, r := range m.rows {
		line := m.rowLine(r)
		if i == m.rowCursor {
			b.WriteString("   " + cyan.Render("▸") + white.Render(line) + "\n")
		} else {
			b.WriteString("    " + dim.Render(line) + "\n")
		}
	}

	b.WriteString(dimmer.Render("   "+strings.Repeat("─", tableWidth())) + "\n")
	b.WriteString(dim.Render(fmt.Sprintf("   %d reglas", len(m.rows))) + "\n")
	b.WriteString(dim.Render("   ↑↓ row  ←→ column  enter/1-4 sort  q quit") + "\n")

	return b.String()
}

func tableWidth() int {
	w := 1
	for _, cw := range columnWidths {
		w += cw + 1
	}
	return w
}

func (m model) headerLine() string {
	var b strings.Builder
	b.WriteString(" ")
	for i, title := range columnTitles {
		cell := title
		if i < len(sortColumns) {
			if key, ok := m.sorter.Key(); ok && key == sortColumns[i] {
				if m.sorter.Ascending() {
					cell += " ▲"
				} else {
					cell += " ▼"
				}
			}
		}
		cell = pad(cell, columnWidths[i])
		if i == m.colCursor {
			b.WriteString(yellow.Render(cell))
		} else if i < len(sortColumns) {
			b.WriteString(green.Render(cell))
		} else {
			b.WriteString(white.Render(cell))
		}
		b.WriteString(" ")
	}
	return b.String()
}

func (m model) rowLine(r tuning.ResultRecord) string {
	cells := []string{
		r.Variant,
		r.Method.String(),
		r.Mode.String(),
		r.Criterion.Label(),
		fmt.Sprintf("%.*f", m.precision, r.Kp),
		fmt.Sprintf("%.*f", m.precision, r.Ti),
		fmt.Sprintf("%.*f", m.precision, r.Td),
		r.Beta.String(),
	}
	var b strings.Builder
	b.WriteString(" ")
	for i, c := range cells {
		b.WriteString(pad(c, columnWidths[i]))
		b.WriteString(" ")
	}
	return b.String()
}

// pad right-fills to a rune count; byte-length padding would misalign the
// accented method names.
func pad(s string, n int) string {
	d := n - utf8.RuneCountInString(s)
	if d <= 0 {
		return s
	}
	return s + strings.Repeat(" ", d)
}

func RunTable(p tuning.ProcessParameters, results tuning.ResultSet, precision int) error {
	prog := tea.NewProgram(NewTableApp(p, results, precision), tea.WithAltScreen())
	_, err := prog.Run()
	return err
}
