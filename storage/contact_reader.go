package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"estate-builder/models"
)

// Default input names probed, in order, when no explicit path is given.
var defaultInputs = []string{"scraped-data.json", "scraped-data.csv"}

// ResolveInput returns the input batch path: an explicitly configured path
// wins, otherwise the conventional file names are probed in dir.
func ResolveInput(dir, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, name := range defaultInputs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("storage: no input batch found in %q (want %s)",
		dir, strings.Join(defaultInputs, " or "))
}

// LoadContacts reads a raw contact batch from a .json or .csv file. A
// missing file, an unsupported extension, or an unparseable JSON document
// is an error the caller treats as fatal. Short CSV rows are padded with
// empty strings rather than failing the row.
func LoadContacts(path string) ([]models.RawContact, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return loadJSON(path)
	case ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("storage: unsupported input format %q (want .json or .csv)", filepath.Ext(path))
	}
}

func loadJSON(path string) ([]models.RawContact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", path, err)
	}
	var records []models.RawContact
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("storage: parse %q: %w", path, err)
	}
	return records, nil
}

func loadCSV(path string) ([]models.RawContact, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows shorter than the header are padded below

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("storage: read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	var records []models.RawContact
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("storage: read csv row: %w", err)
		}
		record := make(models.RawContact, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}
	return records, nil
}
