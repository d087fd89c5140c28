package storage

import (
	"testing"

	"estate-builder/models"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	page := &models.Page{
		ID:    "p1",
		Slug:  "acar-emlak",
		Title: "Acar Emlak",
		Sections: []*models.Section{
			{ID: "s1", Type: models.SectionHero, Visible: true, IsHome: true,
				Data: models.DefaultData(models.SectionHero)},
		},
	}

	if err := store.Upsert(page); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Mutating the session copy must not leak into the store
	page.Title = "Changed"
	page.Sections[0].Data.Hero.Title = "Changed"

	got, err := store.Get("p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Acar Emlak" {
		t.Errorf("stored page mutated through the caller's reference: %q", got.Title)
	}
	if got.Sections[0].Data.Hero.Title != "Başlık Giriniz" {
		t.Errorf("stored section mutated: %q", got.Sections[0].Data.Hero.Title)
	}

	if err := store.Delete("p1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("p1"); err == nil {
		t.Error("expected error after delete")
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get("ghost"); err == nil {
		t.Error("expected error for missing page")
	}
}
