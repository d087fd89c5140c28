// Package builder holds the page-builder core: the section ordering engine
// and the editor session state feeding the live preview.
package builder

import (
	"errors"
	"sort"

	"github.com/google/uuid"

	"estate-builder/models"
	"estate-builder/utils"
)

// ErrProtectedSection is returned when a delete targets the home section.
var ErrProtectedSection = errors.New("builder: home section cannot be deleted")

// Confirmer gates destructive operations. The engine mutates only after an
// affirmative answer.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// PageSession owns one page's section list for the duration of an editing
// session. All mutations keep Order values dense and zero-based. Invalid
// references (unknown id, out-of-range index) are silent no-ops: the UI
// should never produce them, but the engine stays defensive.
type PageSession struct {
	page   *models.Page
	editor *EditorState
	logger *utils.Logger
}

// NewPageSession wraps a page for editing. Order is authoritative, so the
// slice is first sorted by it and then renumbered, giving every session a
// dense zero-based sequence regardless of how the store returned the rows.
func NewPageSession(page *models.Page, editor *EditorState, logger *utils.Logger) *PageSession {
	s := &PageSession{page: page, editor: editor, logger: logger}
	sort.SliceStable(page.Sections, func(i, j int) bool {
		return page.Sections[i].Order < page.Sections[j].Order
	})
	s.renumber()
	return s
}

// Page returns the underlying page.
func (s *PageSession) Page() *models.Page { return s.page }

// Editor returns the session's editor state.
func (s *PageSession) Editor() *EditorState { return s.editor }

// Sections returns the section list in render order.
func (s *PageSession) Sections() []*models.Section { return s.page.Sections }

// Reorder removes the section at src and reinserts it at dst. The move is a
// pure permutation: nothing is created, destroyed, or changed in Data. An
// out-of-range dst clamps to the nearest valid index; an out-of-range src,
// or a move that lands where it started, is a no-op.
func (s *PageSession) Reorder(src, dst int) {
	n := len(s.page.Sections)
	if src < 0 || src >= n {
		return
	}
	if dst < 0 {
		dst = 0
	}
	if dst >= n {
		dst = n - 1
	}
	if src == dst {
		return
	}

	moved := s.page.Sections[src]
	rest := append(s.page.Sections[:src:src], s.page.Sections[src+1:]...)
	s.page.Sections = append(rest[:dst:dst], append([]*models.Section{moved}, rest[dst:]...)...)
	s.renumber()
}

// ToggleVisibility flips the visibility flag of the section with the given
// id. Unknown ids are ignored.
func (s *PageSession) ToggleVisibility(id string) {
	sec := s.page.Section(id)
	if sec == nil {
		return
	}
	sec.Visible = !sec.Visible
}

// AddSection appends a new section of the given type, instantiated from the
// type's template defaults and assigned the next order value. Returns the
// new section, or nil for a type outside the closed set.
func (s *PageSession) AddSection(t models.SectionType) *models.Section {
	if !t.Valid() {
		return nil
	}
	sec := &models.Section{
		ID:      uuid.NewString(),
		Type:    t,
		Order:   len(s.page.Sections),
		Visible: true,
		Data:    models.DefaultData(t),
	}
	s.page.Sections = append(s.page.Sections, sec)
	if s.logger != nil {
		s.logger.Debug("[builder] Added %s section %s at order %d", t, sec.ID, sec.Order)
	}
	return sec
}

// DeleteSection removes the section with the given id after the confirmer
// answers yes. The home section is refused unconditionally, before the
// confirmer is even asked. A deletion also clears any selection referencing
// the removed section. Unknown ids are a no-op.
func (s *PageSession) DeleteSection(id string, confirm Confirmer) error {
	sec := s.page.Section(id)
	if sec == nil {
		return nil
	}
	if sec.IsHome {
		if s.logger != nil {
			s.logger.Warn("[builder] Refused to delete home section %s", id)
		}
		return ErrProtectedSection
	}
	if confirm == nil || !confirm.Confirm("Bu bölümü silmek istediğinize emin misiniz?") {
		return nil
	}

	kept := s.page.Sections[:0]
	for _, existing := range s.page.Sections {
		if existing.ID != id {
			kept = append(kept, existing)
		}
	}
	s.page.Sections = kept
	s.renumber()

	if s.editor != nil && s.editor.SelectedID() == id {
		s.editor.Select("")
	}
	return nil
}

// renumber rewrites Order to the dense sequence 0..n-1 in slice order.
func (s *PageSession) renumber() {
	for i, sec := range s.page.Sections {
		sec.Order = i
	}
}
