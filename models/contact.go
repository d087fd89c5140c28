package models

// RawContact holds one unprocessed scraped record. Field names vary by
// source (English and Turkish aliases), so the shape stays schemaless until
// the cleaner resolves it.
type RawContact map[string]any

// Contact is the cleaned, canonical record ready for export.
// Email is nil only when the source had no email at all; a malformed email
// is kept as-is for inspection. Raw preserves the original record for audit.
type Contact struct {
	Name     string     `json:"name"`
	Phone    string     `json:"phone"`
	Email    *string    `json:"email"`
	Address  string     `json:"address"`
	Website  string     `json:"website"`
	Rating   *float64   `json:"rating"`
	Reviews  *int       `json:"reviews"`
	Category string     `json:"category"`
	Raw      RawContact `json:"raw"`
}

// DuplicateRecord pairs a dropped duplicate with the canonical record it
// collided with and the composite key they share.
type DuplicateRecord struct {
	Key       string     `json:"key"`
	Original  *Contact   `json:"original"`
	Duplicate RawContact `json:"duplicate"`
}

// InvalidRecord pairs a rejection reason with the untouched raw record.
type InvalidRecord struct {
	Reason string     `json:"reason"`
	Record RawContact `json:"record"`
}

// CleaningStats are the running counters of a single cleaning pass.
type CleaningStats struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	Duplicates   int `json:"duplicates"`
	NoPhone      int `json:"no_phone"`
	InvalidEmail int `json:"invalid_email"`
}

// CleaningResult is the full outcome of one pass: the three partitions plus
// the counters. Valid, Duplicates and Invalid together account for every
// input record exactly once.
type CleaningResult struct {
	Valid      []*Contact         `json:"valid"`
	Duplicates []*DuplicateRecord `json:"duplicates"`
	Invalid    []*InvalidRecord   `json:"invalid"`
	Stats      CleaningStats      `json:"stats"`
}
