package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	appTitle = "To-Do List Manager"
	closeBox = "[X]"

	contentWidth = 60
	labelWidth   = 20
	inputWidth   = contentWidth - labelWidth - 2
	buttonGap    = 2

	// The frame adds a border and one column of padding on each side.
	frameLeft = 2
	frameTop  = 1
)

var frameStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(0, 1)

var titleBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("230")).
	Background(lipgloss.Color("62"))

var (
	ruleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	buttonStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusButtonStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	selectedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warningStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	infoStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

var (
	fieldLabels  = [3]string{"Task Description:", "Date (YYYY-MM-DD):", "Time (HH:MM):"}
	buttonLabels = [3]string{"Add Task", "Mark Completed", "Delete Task"}
)

type targetKind int

const (
	targetNone targetKind = iota
	targetTitle
	targetClose
	targetField
	targetButton
	targetTask
	targetOK
)

// target is what a pointer press lands on. index is a focus for fields and
// buttons and a list position for tasks.
type target struct {
	kind  targetKind
	index int
}

// span is a clickable column range within a row, relative to the content area.
type span struct {
	start, end int
	target     target
}

type row struct {
	text  string
	spans []span
}

func plainRow(text string) row {
	return row{text: text}
}

func fullRow(text string, t target) row {
	return row{text: text, spans: []span{{start: 0, end: contentWidth, target: t}}}
}

func (m Model) View() string {
	rows := m.rows()
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = ansi.Truncate(r.text, contentWidth, "")
	}
	frame := frameStyle.Width(contentWidth + 2).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().MarginLeft(m.win.x).MarginTop(m.win.y).Render(frame)
}

// rows lays out the content area one terminal line per row. Mouse hit testing
// uses the same layout, so what is drawn is what is clickable.
func (m Model) rows() []row {
	rows := []row{m.titleRow(), plainRow(ruleStyle.Render(strings.Repeat("─", contentWidth)))}
	if m.dialog != nil {
		return append(rows, m.dialogRows()...)
	}

	for i := range m.inputs {
		f := focus(i)
		style := labelStyle
		if m.focus == f {
			style = focusLabelStyle
		}
		label := style.Width(labelWidth).Render(fieldLabels[i])
		rows = append(rows, fullRow(label+m.inputs[i].View(), target{kind: targetField, index: i}))
	}
	rows = append(rows, plainRow(""), m.buttonRow(), plainRow(""))
	rows = append(rows, m.listRows()...)
	rows = append(rows,
		plainRow(""),
		plainRow(mutedStyle.Render(m.status)),
		plainRow(m.help.View(m.keys)),
	)
	return rows
}

func (m Model) titleRow() row {
	titleWidth := contentWidth - len(closeBox)
	title := titleBarStyle.Width(titleWidth).Render(" " + appTitle)
	return row{
		text: title + titleBarStyle.Render(closeBox),
		spans: []span{
			{start: 0, end: titleWidth, target: target{kind: targetTitle}},
			{start: titleWidth, end: contentWidth, target: target{kind: targetClose}},
		},
	}
}

func (m Model) buttonRow() row {
	var (
		b     strings.Builder
		spans []span
		col   int
	)
	for i, label := range buttonLabels {
		f := focusAdd + focus(i)
		text := "[ " + label + " ]"
		style := buttonStyle
		if m.focus == f {
			style = focusButtonStyle
		}
		if i > 0 {
			b.WriteString(strings.Repeat(" ", buttonGap))
			col += buttonGap
		}
		b.WriteString(style.Render(text))
		spans = append(spans, span{start: col, end: col + len(text), target: target{kind: targetButton, index: int(f)}})
		col += len(text)
	}
	return row{text: b.String(), spans: spans}
}

func (m Model) listRows() []row {
	if len(m.tasks) == 0 {
		return []row{plainRow(mutedStyle.Render("No tasks yet."))}
	}
	end := m.offset + m.cfg.ListHeight
	if end > len(m.tasks) {
		end = len(m.tasks)
	}
	rows := make([]row, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		text := "  " + m.tasks[i].String()
		if i == m.selected {
			text = ">" + text[1:]
			style := selectedStyle
			if m.focus == focusList {
				style = style.Reverse(true)
			}
			text = style.Render(ansi.Truncate(text, contentWidth, "…"))
		}
		rows = append(rows, fullRow(text, target{kind: targetTask, index: i}))
	}
	return rows
}

func (m Model) dialogRows() []row {
	heading := infoStyle.Render(m.dialog.title)
	if m.dialog.title == "Warning" {
		heading = warningStyle.Render(m.dialog.title)
	}
	rows := []row{plainRow(""), plainRow(heading), plainRow("")}
	wrapped := lipgloss.NewStyle().Width(contentWidth).Render(m.dialog.message)
	for _, line := range strings.Split(wrapped, "\n") {
		rows = append(rows, plainRow(line))
	}
	ok := "[ OK ]"
	rows = append(rows,
		plainRow(""),
		row{text: focusButtonStyle.Render(ok), spans: []span{{start: 0, end: len(ok), target: target{kind: targetOK}}}},
		plainRow(""),
	)
	return rows
}

// hit maps a terminal cell to the element drawn there.
func (m Model) hit(x, y int) target {
	r := y - m.win.y - frameTop
	c := x - m.win.x - frameLeft
	rows := m.rows()
	if r < 0 || r >= len(rows) || c < 0 || c >= contentWidth {
		return target{}
	}
	for _, s := range rows[r].spans {
		if c >= s.start && c < s.end {
			return s.target
		}
	}
	return target{}
}

// outerSize is the frame size including border and padding.
func (m Model) outerSize() (int, int) {
	return contentWidth + 2*frameLeft, len(m.rows()) + 2*frameTop
}
