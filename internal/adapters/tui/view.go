package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/margin/internal/adapters/dom"
	"go.trai.ch/margin/internal/core/domain"
	"go.trai.ch/margin/internal/ui/style"
)

const (
	chromeHeight  = 4
	dialogReserve = 10
	indentWidth   = 2
)

// View renders the UI.
func (m *Model) View() string {
	if m.Quitting {
		return ""
	}
	if !m.Started {
		return "Loading..."
	}

	parts := []string{m.header(), m.elementList()}
	if box := m.dialog(); box != "" {
		parts = append(parts, box)
	}
	parts = append(parts, m.footer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) header() string {
	title := m.doc.Title()
	if title == "" {
		title = m.engine.Page()
	}

	state, _ := m.doc.ToolbarState()
	mode := idleStyle.Render(state.ToggleLabel())
	if state.Active {
		mode = activeStyle.Render(state.ToggleLabel())
	}
	count := markerStyle.Render(fmt.Sprintf("%s %s", style.Bubble, m.doc.Counter()))

	return titleStyle.Render("margin "+title) + " " + mode + " " + count + "\n"
}

func (m *Model) elementList() string {
	annotated := make(map[string]int)
	for _, a := range m.engine.Annotations() {
		annotated[a.Selector]++
	}

	h := m.listHeight()
	end := m.Offset + h
	if end > len(m.Elements) {
		end = len(m.Elements)
	}

	var s strings.Builder
	for i := m.Offset; i < end; i++ {
		el := m.Elements[i]
		pos := m.doc.Offset(el)
		indent := strings.Repeat(" ", indentWidth*int(pos.X)/dom.Indent)

		cursor := "  "
		text := elementStyle
		if i == m.Cursor {
			cursor = selectedStyle.Render(style.Cursor + " ")
			text = selectedStyle
		}

		line := cursor + indent + text.Render(preview(el.Text())) + " " + locatorStyle.Render(el.Locator())
		if n := annotated[el.Locator()]; n > 0 {
			line += " " + markerStyle.Render(fmt.Sprintf("%s%d", style.Bubble, n))
		}
		s.WriteString(line + "\n")
	}
	return s.String()
}

func (m *Model) dialog() string {
	dlg, values, open := m.doc.Dialog()
	if !open {
		return ""
	}

	lines := []string{dialogTitleStyle.Render(dlg.Title)}
	switch {
	case dlg.Kind == domain.DialogList && len(dlg.Body) == 0:
		lines = append(lines, placeholderStyle.Render(dlg.Empty))
	case dlg.Kind == domain.DialogList:
		for i, item := range dlg.Body {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
		}
	default:
		lines = append(lines, dlg.Body...)
	}

	focused, _ := m.doc.Focused()
	for _, f := range dlg.Fields {
		v := values[f.Name]
		if v == "" {
			v = placeholderStyle.Render(f.Placeholder)
		}
		label := f.Name + ": "
		if f.Name == focused {
			label = focusStyle.Render(style.Cursor + " " + label)
			v += focusStyle.Render("█")
		} else {
			label = "  " + label
		}
		lines = append(lines, label+v)
	}

	labels := make([]string, 0, len(dlg.Actions))
	for _, a := range dlg.Actions {
		labels = append(labels, "["+a.Label+"]")
	}
	if len(labels) > 0 {
		lines = append(lines, "", strings.Join(labels, " "))
	}

	return dialogStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) footer() string {
	var notice string
	if notices := m.doc.Notices(); len(notices) > 0 {
		notice = noticeStyle.Render(style.Warning + " " + notices[len(notices)-1])
	}

	help := "↑/↓ move · enter annotate · a toggle · v list · 1-9 marker · q quit"
	if _, _, open := m.doc.Dialog(); open {
		help = "type to edit · tab next field · enter confirm · esc cancel"
	}
	return notice + "\n" + helpStyle.Render(help)
}

func preview(text string) string {
	const maxLen = 48
	r := []rune(text)
	if len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	if len(r) == 0 {
		return "·"
	}
	return text
}
