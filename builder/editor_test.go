package builder

import (
	"testing"

	"estate-builder/models"
)

func TestSelectAndClear(t *testing.T) {
	e := NewEditorState()

	e.Select("sec-1")
	if e.SelectedID() != "sec-1" {
		t.Errorf("selected: got %q, want sec-1", e.SelectedID())
	}

	e.Select("")
	if e.SelectedID() != "" {
		t.Errorf("selection not cleared: %q", e.SelectedID())
	}
}

func TestUpdateSectionDataMerges(t *testing.T) {
	e := NewEditorState()

	e.UpdateSectionData("sec-1", map[string]any{"title": "Yeni Başlık"})
	e.UpdateSectionData("sec-1", map[string]any{"subtitle": "Alt"})
	e.UpdateSectionData("sec-1", map[string]any{"title": "Son Başlık"})

	override := e.Override("sec-1")
	if override["title"] != "Son Başlık" {
		t.Errorf("title: got %v, want Son Başlık", override["title"])
	}
	if override["subtitle"] != "Alt" {
		t.Errorf("subtitle lost during merge: %v", override["subtitle"])
	}
}

func TestCommitDoesNotClear(t *testing.T) {
	e := NewEditorState()
	e.UpdateSectionData("sec-1", map[string]any{"title": "X"})

	committed := e.Commit()
	if len(committed) != 1 {
		t.Fatalf("commit returned %d entries, want 1", len(committed))
	}
	if e.Override("sec-1") == nil {
		t.Error("Commit cleared the overrides; clearing is the caller's decision")
	}

	e.ClearOverrides()
	if e.Override("sec-1") != nil {
		t.Error("ClearOverrides left an override behind")
	}
}

func TestApplyOverrides(t *testing.T) {
	sec := &models.Section{
		ID:   "hero-1",
		Type: models.SectionHero,
		Data: models.DefaultData(models.SectionHero),
	}

	err := ApplyOverrides(sec, map[string]any{"title": "Satılık Daireler", "buttonText": "Ara"})
	if err != nil {
		t.Fatalf("ApplyOverrides: %v", err)
	}
	if sec.Data.Hero.Title != "Satılık Daireler" {
		t.Errorf("title: got %q", sec.Data.Hero.Title)
	}
	if sec.Data.Hero.ButtonText != "Ara" {
		t.Errorf("buttonText: got %q", sec.Data.Hero.ButtonText)
	}
	if sec.Data.Hero.Subtitle != "Alt başlık giriniz" {
		t.Errorf("untouched field changed: %q", sec.Data.Hero.Subtitle)
	}
}
