package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	if m.confirming {
		modal := modalStyle.Render("Bu bölümü silmek istediğinize emin misiniz?\n\n  [y] evet   [n] hayır")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
	}

	sidebar := m.renderSidebar()

	var right string
	switch m.focus {
	case focusPicker:
		right = m.renderPicker()
	case focusProperties:
		right = m.renderProperties()
	default:
		right = m.renderHint()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

func (m Model) renderSidebar() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bölümler"))
	b.WriteString("\n\n")

	selectedID := m.session.Editor().SelectedID()
	for i, sec := range m.session.Sections() {
		prefix := "  "
		if i == m.cursor && m.focus == focusSections {
			prefix = cursorStyle.Render("> ")
		}

		eye := "●"
		if !sec.Visible {
			eye = "○"
		}
		line := fmt.Sprintf("%d %s %s", sec.Order, eye, sec.Type)
		if sec.IsHome {
			line += homeBadgeStyle.Render(" ⌂")
		}
		switch {
		case sec.ID == selectedID:
			line = selectedStyle.Render(line)
		case !sec.Visible:
			line = hiddenStyle.Render(line)
		}
		b.WriteString(prefix + line + "\n")
	}

	style := paneStyle
	if m.focus == focusSections {
		style = focusedPaneStyle
	}
	return style.Width(30).Render(b.String())
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Bölüm Ekle"))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	return focusedPaneStyle.Width(36).Render(b.String())
}

func (m Model) renderProperties() string {
	sec := m.selectedSection()
	if sec == nil {
		return paneStyle.Width(36).Render("no selection")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Özellikler — %s", sec.Type)))
	b.WriteString("\n\n")

	fields := editableFields(sec)
	for i, field := range fields {
		prefix := "  "
		if i == m.fieldCursor {
			prefix = cursorStyle.Render("> ")
		}
		value := m.currentFieldValue(sec, field)
		if m.editing && i == m.fieldCursor {
			value = m.input + "▌"
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, fieldLabelStyle.Render(field), value))
	}
	if len(fields) == 0 {
		b.WriteString("  (no editable fields)\n")
	}

	return focusedPaneStyle.Width(m.rightWidth()).Render(b.String())
}

func (m Model) renderHint() string {
	editor := m.session.Editor()
	mode := "görüntüleme"
	if editor.EditMode() {
		mode = "düzenleme"
	}
	hint := fmt.Sprintf("Sayfa: %s\nMod: %s\n\nenter: bölüm seç\na: bölüm ekle\nd: bölüm sil",
		m.session.Page().Title, mode)
	return paneStyle.Width(m.rightWidth()).Render(hint)
}

func (m Model) renderFooter() string {
	help := "e edit · enter select · a add · d delete · J/K move · space hide · s save · q quit"
	line := statusStyle.Render(help)
	if m.status != "" {
		status := m.status
		if m.statusErr {
			status = errorStyle.Render(status)
		}
		line = status + "  " + statusStyle.Render("· "+help)
	}
	return line
}

func (m Model) rightWidth() int {
	w := m.width - 34
	if w < 36 {
		w = 36
	}
	return w
}
