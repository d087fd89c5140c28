package builder

import (
	"sort"
	"testing"

	"estate-builder/models"
	"estate-builder/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

func newTestPage(types ...models.SectionType) *models.Page {
	page := &models.Page{ID: "p1", Slug: "p1", Title: "Test", Visible: true}
	for i, t := range types {
		sec := &models.Section{
			ID:      string(t) + "-sec",
			Type:    t,
			Order:   i,
			Visible: true,
			Data:    models.DefaultData(t),
		}
		if i == 0 {
			sec.IsHome = true
		}
		page.Sections = append(page.Sections, sec)
	}
	return page
}

func newTestSession(types ...models.SectionType) *PageSession {
	return NewPageSession(newTestPage(types...), NewEditorState(), newTestLogger())
}

func ids(s *PageSession) []string {
	out := make([]string, 0, len(s.Sections()))
	for _, sec := range s.Sections() {
		out = append(out, sec.ID)
	}
	return out
}

func assertDenseOrder(t *testing.T, s *PageSession) {
	t.Helper()
	for i, sec := range s.Sections() {
		if sec.Order != i {
			t.Errorf("section %s has order %d at position %d; orders must be dense", sec.ID, sec.Order, i)
		}
	}
}

func TestNewSessionSortsByOrder(t *testing.T) {
	page := newTestPage(models.SectionHero, models.SectionText, models.SectionCTA)
	// Simulate a store returning rows out of rank sequence
	page.Sections[0].Order = 2
	page.Sections[1].Order = 0
	page.Sections[2].Order = 1

	s := NewPageSession(page, NewEditorState(), newTestLogger())

	want := []string{"text-sec", "cta-sec", "hero-sec"}
	for i, id := range ids(s) {
		if id != want[i] {
			t.Fatalf("position %d: got %s, want %s (Order must beat slice order)", i, id, want[i])
		}
	}
	assertDenseOrder(t, s)
}

func TestReorderIsPermutation(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText, models.SectionFeatures,
		models.SectionGallery, models.SectionContact)

	before := ids(s)
	moves := [][2]int{{0, 4}, {2, 0}, {4, 1}, {3, 3}, {1, 2}}
	for _, mv := range moves {
		s.Reorder(mv[0], mv[1])
		assertDenseOrder(t, s)
	}

	after := ids(s)
	if len(after) != len(before) {
		t.Fatalf("section count changed: got %d, want %d", len(after), len(before))
	}
	sortedBefore := append([]string(nil), before...)
	sortedAfter := append([]string(nil), after...)
	sort.Strings(sortedBefore)
	sort.Strings(sortedAfter)
	for i := range sortedBefore {
		if sortedBefore[i] != sortedAfter[i] {
			t.Fatalf("id multiset changed after reorders: %v vs %v", before, after)
		}
	}
}

func TestReorderSamePositionIsNoop(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText, models.SectionCTA)
	before := ids(s)

	s.Reorder(1, 1)

	after := ids(s)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("reorder(i, i) changed the sequence: %v vs %v", before, after)
		}
	}
}

func TestReorderClampsDestination(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText, models.SectionCTA)

	s.Reorder(0, 99)
	if got := s.Sections()[2].ID; got != "hero-sec" {
		t.Errorf("expected hero clamped to last position, got %s there", got)
	}
	assertDenseOrder(t, s)

	s.Reorder(2, -5)
	if got := s.Sections()[0].ID; got != "hero-sec" {
		t.Errorf("expected hero clamped to first position, got %s there", got)
	}
	assertDenseOrder(t, s)
}

func TestReorderInvalidSourceIsNoop(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)
	before := ids(s)

	s.Reorder(-1, 0)
	s.Reorder(7, 0)

	after := ids(s)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("out-of-range source mutated the sequence")
		}
	}
}

func TestToggleVisibility(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)

	s.ToggleVisibility("text-sec")
	if s.Page().Section("text-sec").Visible {
		t.Error("expected text section hidden after toggle")
	}
	s.ToggleVisibility("text-sec")
	if !s.Page().Section("text-sec").Visible {
		t.Error("expected text section visible after second toggle")
	}

	// Unknown ids are ignored
	s.ToggleVisibility("nope")
}

func TestAddSectionUsesTemplateDefaults(t *testing.T) {
	s := newTestSession(models.SectionHero)

	sec := s.AddSection(models.SectionCTA)
	if sec == nil {
		t.Fatal("AddSection returned nil for a valid type")
	}
	if sec.Order != 1 {
		t.Errorf("new section order: got %d, want 1", sec.Order)
	}
	if sec.ID == "" {
		t.Error("new section must get an id")
	}
	if sec.Data.CTA == nil || sec.Data.CTA.Title != "Hemen Başlayın" {
		t.Errorf("new cta section did not get template defaults: %+v", sec.Data.CTA)
	}
	if !sec.Visible {
		t.Error("new sections start visible")
	}

	if s.AddSection("carousel") != nil {
		t.Error("AddSection must reject types outside the closed set")
	}
}

func TestAddSectionIDsUnique(t *testing.T) {
	s := newTestSession(models.SectionHero)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		sec := s.AddSection(models.SectionText)
		if seen[sec.ID] {
			t.Fatalf("duplicate section id %s", sec.ID)
		}
		seen[sec.ID] = true
	}
}

func TestAddThenDeleteScenario(t *testing.T) {
	s := newTestSession(models.SectionHero)

	added := s.AddSection(models.SectionText)
	if len(s.Sections()) != 2 || added.Order != 1 {
		t.Fatalf("after add: %d sections, text order %d", len(s.Sections()), added.Order)
	}

	if err := s.DeleteSection(added.ID, ConfirmFunc(func(string) bool { return true })); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Sections()) != 1 {
		t.Fatalf("after delete: got %d sections, want 1", len(s.Sections()))
	}
	if hero := s.Sections()[0]; hero.ID != "hero-sec" || hero.Order != 0 {
		t.Errorf("hero changed: id=%s order=%d", hero.ID, hero.Order)
	}
}

func TestDeleteRefusesHomeSection(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)

	err := s.DeleteSection("hero-sec", ConfirmFunc(func(string) bool { return true }))
	if err != ErrProtectedSection {
		t.Fatalf("expected ErrProtectedSection, got %v", err)
	}
	if len(s.Sections()) != 2 {
		t.Errorf("section count changed to %d; home delete must be refused", len(s.Sections()))
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)

	asked := false
	err := s.DeleteSection("text-sec", ConfirmFunc(func(string) bool {
		asked = true
		return false
	}))
	if err != nil {
		t.Fatalf("declined delete must not error: %v", err)
	}
	if !asked {
		t.Error("confirmer was never asked")
	}
	if len(s.Sections()) != 2 {
		t.Errorf("declined delete still removed a section")
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)
	s.Editor().Select("text-sec")

	if err := s.DeleteSection("text-sec", ConfirmFunc(func(string) bool { return true })); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Editor().SelectedID(); got != "" {
		t.Errorf("selection still references deleted section: %q", got)
	}
}

func TestDeleteUnknownIDIsNoop(t *testing.T) {
	s := newTestSession(models.SectionHero, models.SectionText)

	if err := s.DeleteSection("ghost", ConfirmFunc(func(string) bool { return true })); err != nil {
		t.Fatalf("unknown id must be a silent no-op, got %v", err)
	}
	if len(s.Sections()) != 2 {
		t.Errorf("unknown-id delete changed section count")
	}
}
