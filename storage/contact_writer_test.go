package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"estate-builder/models"
	"estate-builder/utils"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func newTestResult() *models.CleaningResult {
	return &models.CleaningResult{
		Valid: []*models.Contact{
			{
				Name:     `Acar "Güven" Emlak`,
				Phone:    "+905321234567",
				Email:    strPtr("info@acar.com"),
				Address:  "Beşiktaş",
				Category: "emlak ofisi",
				Rating:   floatPtr(4.5),
			},
			{
				Name:  "Yıldız Emlak",
				Phone: "+902123456789",
			},
		},
		Duplicates: []*models.DuplicateRecord{},
		Invalid:    []*models.InvalidRecord{},
		Stats:      models.CleaningStats{Total: 2, Valid: 2},
	}
}

func TestWriteAllEmitsArtifacts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := w.WriteAll(newTestResult()); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	for _, name := range []string{"cleaned-data.json", "cleaned-data.csv", "cleaning-stats.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}

	// Empty partitions must not produce files
	for _, name := range []string{"duplicates.json", "invalid-data.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			t.Errorf("artifact %s written for an empty partition", name)
		}
	}
}

func TestWriteAllEmitsNonEmptyPartitions(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	result := newTestResult()
	result.Invalid = append(result.Invalid, &models.InvalidRecord{
		Reason: "No valid phone",
		Record: models.RawContact{"name": "Kısa"},
	})

	if err := w.WriteAll(result); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "invalid-data.json"))
	if err != nil {
		t.Fatalf("invalid-data.json: %v", err)
	}
	var invalid []models.InvalidRecord
	if err := json.Unmarshal(raw, &invalid); err != nil {
		t.Fatalf("parse invalid-data.json: %v", err)
	}
	if len(invalid) != 1 || invalid[0].Reason != "No valid phone" {
		t.Errorf("unexpected invalid list: %+v", invalid)
	}
	if !strings.Contains(string(raw), "\n  ") {
		t.Error("JSON artifacts must be pretty-printed with 2-space indent")
	}
}

func TestCSVQuotesAndEscapes(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteAll(newTestResult()); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "cleaned-data.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != `"name","phone","email","address","website","rating","reviews","category"` {
		t.Errorf("header: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"Acar ""Güven"" Emlak"`) {
		t.Errorf("internal quotes must be doubled: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"4.5"`) {
		t.Errorf("rating must be rendered quoted: %s", lines[1])
	}
	// Absent optional fields render as empty quoted values
	if !strings.Contains(lines[2], `"",""`) {
		t.Errorf("missing fields must stay quoted: %s", lines[2])
	}
}
