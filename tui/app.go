// Package tui is the terminal front end of the page builder: a sections
// sidebar, a components panel for adding new blocks, a properties panel for
// the selected section, and a confirmation modal gating deletes.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"estate-builder/builder"
	"estate-builder/models"
	"estate-builder/storage"
	"estate-builder/utils"
)

type focusArea int

const (
	focusSections focusArea = iota
	focusPicker
	focusProperties
)

// PreviewMsg is delivered (via the debouncer) when a burst of property
// edits has settled.
type PreviewMsg struct {
	Edit builder.PreviewEdit
}

type saveDoneMsg struct{ err error }

// ---------------------------------------------------------------------------
// Components-panel item (implements list.Item)
// ---------------------------------------------------------------------------

type sectionItem struct {
	t models.SectionType
}

func (s sectionItem) Title() string       { return string(s.t) }
func (s sectionItem) Description() string { return "" }
func (s sectionItem) FilterValue() string { return string(s.t) }

type sectionItemDelegate struct{}

func (d sectionItemDelegate) Height() int  { return 1 }
func (d sectionItemDelegate) Spacing() int { return 0 }
func (d sectionItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d sectionItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(sectionItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = cursorStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s", prefix, entry.t)
}

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Model is the Bubble Tea model for one builder session.
type Model struct {
	session  *builder.PageSession
	store    storage.RecordStore
	debounce *builder.Debouncer
	logger   *utils.Logger
	keys     keyMap

	focus  focusArea
	cursor int
	picker list.Model

	fieldCursor int
	editing     bool
	input       string

	confirming bool
	confirmID  string

	status    string
	statusErr bool

	width  int
	height int
}

// New assembles the builder TUI around an editing session.
func New(session *builder.PageSession, store storage.RecordStore, debounce *builder.Debouncer, logger *utils.Logger) Model {
	items := make([]list.Item, 0, len(models.AllSectionTypes))
	for _, t := range models.AllSectionTypes {
		items = append(items, sectionItem{t: t})
	}
	picker := list.New(items, sectionItemDelegate{}, 30, len(items)+2)
	picker.SetShowTitle(false)
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)

	return Model{
		session:  session,
		store:    store,
		debounce: debounce,
		logger:   logger,
		keys:     defaultKeyMap(),
		picker:   picker,
		status:   "Press e to enter edit mode",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case PreviewMsg:
		m.setStatus(fmt.Sprintf("Preview updated: %s", msg.Edit.Field), false)
		return m, nil
	case saveDoneMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("Save failed: %v", msg.err), true)
			return m, nil
		}
		m.session.Editor().ClearOverrides()
		m.setStatus("Page saved.", false)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if m.editing {
		return m.handleInputKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.debounce.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.EditMode):
		editor := m.session.Editor()
		editor.SetEditMode(!editor.EditMode())
		if editor.EditMode() {
			m.setStatus("Edit mode on.", false)
		} else {
			m.setStatus("Edit mode off.", false)
		}
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.saveCmd()
	}

	switch m.focus {
	case focusPicker:
		return m.handlePickerKey(msg)
	case focusProperties:
		return m.handlePropertiesKey(msg)
	default:
		return m.handleSectionsKey(msg)
	}
}

func (m Model) handleSectionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sections := m.session.Sections()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(sections)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.MoveUp):
		if !m.requireEditMode() {
			return m, nil
		}
		m.session.Reorder(m.cursor, m.cursor-1)
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.MoveDown):
		if !m.requireEditMode() {
			return m, nil
		}
		m.session.Reorder(m.cursor, m.cursor+1)
		if m.cursor < len(sections)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if !m.requireEditMode() {
			return m, nil
		}
		if sec := m.sectionAtCursor(); sec != nil {
			m.session.ToggleVisibility(sec.ID)
		}
	case key.Matches(msg, m.keys.Add):
		if !m.requireEditMode() {
			return m, nil
		}
		m.focus = focusPicker
	case key.Matches(msg, m.keys.Delete):
		if !m.requireEditMode() {
			return m, nil
		}
		sec := m.sectionAtCursor()
		if sec == nil {
			return m, nil
		}
		if sec.IsHome {
			m.setStatus("The home section cannot be deleted.", true)
			return m, nil
		}
		m.confirming = true
		m.confirmID = sec.ID
	case key.Matches(msg, m.keys.Select):
		if sec := m.sectionAtCursor(); sec != nil {
			m.session.Editor().Select(sec.ID)
			m.focus = focusProperties
			m.fieldCursor = 0
		}
	case key.Matches(msg, m.keys.Back):
		m.session.Editor().Select("")
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.focus = focusSections
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if item, ok := m.picker.SelectedItem().(sectionItem); ok {
			sec := m.session.AddSection(item.t)
			if sec != nil {
				m.cursor = sec.Order
				m.setStatus(fmt.Sprintf("Added %s section.", item.t), false)
			}
		}
		m.focus = focusSections
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handlePropertiesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sec := m.selectedSection()
	if sec == nil {
		m.focus = focusSections
		return m, nil
	}
	fields := editableFields(sec)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.session.Editor().Select("")
		m.focus = focusSections
	case key.Matches(msg, m.keys.Up):
		if m.fieldCursor > 0 {
			m.fieldCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.fieldCursor < len(fields)-1 {
			m.fieldCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if !m.requireEditMode() {
			return m, nil
		}
		if m.fieldCursor < len(fields) {
			m.editing = true
			m.input = m.currentFieldValue(sec, fields[m.fieldCursor])
		}
	}
	return m, nil
}

// handleInputKey drives the single-line field editor. Every change is
// pushed into the override map and through the debouncer, so the preview
// settles on the final value of a typing burst.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sec := m.selectedSection()
	if sec == nil {
		m.editing = false
		return m, nil
	}
	fields := editableFields(sec)
	if m.fieldCursor >= len(fields) {
		m.editing = false
		return m, nil
	}
	field := fields[m.fieldCursor]

	switch msg.Type {
	case tea.KeyEscape, tea.KeyEnter:
		m.editing = false
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes, tea.KeySpace:
		// A terminal space arrives as KeySpace with the rune already in
		// Runes; only synthesise one when Runes is empty.
		if msg.Type == tea.KeySpace && len(msg.Runes) == 0 {
			m.input += " "
		} else {
			m.input += string(msg.Runes)
		}
	default:
		return m, nil
	}

	m.session.Editor().UpdateSectionData(sec.ID, map[string]any{field: m.input})
	m.debounce.Trigger(builder.PreviewEdit{SectionID: sec.ID, Field: field, Value: m.input})
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.confirmID
		m.confirming = false
		m.confirmID = ""
		err := m.session.DeleteSection(id, builder.ConfirmFunc(func(string) bool { return true }))
		if err != nil {
			m.setStatus(err.Error(), true)
			return m, nil
		}
		if m.cursor >= len(m.session.Sections()) && m.cursor > 0 {
			m.cursor--
		}
		m.setStatus("Section deleted.", false)
	case "n", "N", "esc":
		m.confirming = false
		m.confirmID = ""
	}
	return m, nil
}

// saveCmd folds the accumulated overrides into the page and flushes it to
// the record store.
func (m Model) saveCmd() tea.Cmd {
	session := m.session
	store := m.store
	return func() tea.Msg {
		editor := session.Editor()
		for id, fields := range editor.Commit() {
			sec := session.Page().Section(id)
			if sec == nil {
				continue // stale override for a deleted section
			}
			if err := builder.ApplyOverrides(sec, fields); err != nil {
				return saveDoneMsg{err: err}
			}
		}
		return saveDoneMsg{err: store.Upsert(session.Page())}
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) requireEditMode() bool {
	if m.session.Editor().EditMode() {
		return true
	}
	m.setStatus("Enable edit mode first (e).", true)
	return false
}

func (m Model) sectionAtCursor() *models.Section {
	sections := m.session.Sections()
	if m.cursor < 0 || m.cursor >= len(sections) {
		return nil
	}
	return sections[m.cursor]
}

func (m Model) selectedSection() *models.Section {
	id := m.session.Editor().SelectedID()
	if id == "" {
		return nil
	}
	return m.session.Page().Section(id)
}

// currentFieldValue prefers the uncommitted override over the persisted
// payload, so reopening a field shows what the preview shows.
func (m Model) currentFieldValue(sec *models.Section, field string) string {
	if override := m.session.Editor().Override(sec.ID); override != nil {
		if v, ok := override[field].(string); ok {
			return v
		}
	}
	return fieldValue(sec, field)
}
