package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"estate-builder/models"
	"estate-builder/utils"
)

// Output artifact names, fixed by the export format.
const (
	cleanedJSONName = "cleaned-data.json"
	cleanedCSVName  = "cleaned-data.csv"
	duplicatesName  = "duplicates.json"
	invalidName     = "invalid-data.json"
	statsName       = "cleaning-stats.json"
)

var csvHeader = []string{"name", "phone", "email", "address", "website", "rating", "reviews", "category"}

// ArtifactWriter renders a cleaning result into its file artifacts:
// pretty-printed JSON plus a CSV of the cleaned set. Duplicates and invalid
// lists are only written when non-empty.
type ArtifactWriter struct {
	outDir string
	logger *utils.Logger
}

// NewArtifactWriter creates the output directory if needed and returns a
// writer emitting into it.
func NewArtifactWriter(outDir string, logger *utils.Logger) (*ArtifactWriter, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("storage: create output dir: %w", err)
	}
	return &ArtifactWriter{outDir: outDir, logger: logger}, nil
}

// WriteAll emits every artifact for the result.
func (w *ArtifactWriter) WriteAll(result *models.CleaningResult) error {
	if err := w.writeJSON(cleanedJSONName, result.Valid); err != nil {
		return err
	}
	if err := w.writeCSV(result.Valid); err != nil {
		return err
	}
	if len(result.Duplicates) > 0 {
		if err := w.writeJSON(duplicatesName, result.Duplicates); err != nil {
			return err
		}
	}
	if len(result.Invalid) > 0 {
		if err := w.writeJSON(invalidName, result.Invalid); err != nil {
			return err
		}
	}
	if err := w.writeJSON(statsName, result.Stats); err != nil {
		return err
	}

	w.logger.Info("[export] Artifacts written to %s", w.outDir)
	return nil
}

func (w *ArtifactWriter) writeJSON(name string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", name, err)
	}
	path := filepath.Join(w.outDir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("storage: write %s: %w", name, err)
	}
	return nil
}

// writeCSV renders the cleaned set by hand: the export format quotes every
// value unconditionally and doubles internal quotes, which encoding/csv's
// conditional quoting would not reproduce.
func (w *ArtifactWriter) writeCSV(contacts []*models.Contact) error {
	var b strings.Builder
	b.WriteString(renderRow(csvHeader))

	for _, c := range contacts {
		email := ""
		if c.Email != nil {
			email = *c.Email
		}
		rating := ""
		if c.Rating != nil {
			rating = strconv.FormatFloat(*c.Rating, 'f', -1, 64)
		}
		reviews := ""
		if c.Reviews != nil {
			reviews = strconv.Itoa(*c.Reviews)
		}
		b.WriteString(renderRow([]string{
			c.Name, c.Phone, email, c.Address, c.Website, rating, reviews, c.Category,
		}))
	}

	path := filepath.Join(w.outDir, cleanedCSVName)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("storage: write %s: %w", cleanedCSVName, err)
	}
	return nil
}

func renderRow(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}
