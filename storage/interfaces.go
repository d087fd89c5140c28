package storage

import "estate-builder/models"

// RecordStore is the persistence collaborator the builder saves pages to.
// It is only ever called at explicit save points — the builder never polls.
type RecordStore interface {
	Get(pageID string) (*models.Page, error)
	Upsert(page *models.Page) error
	Delete(pageID string) error
	Close() error
}

// ContactSink is the interface any cleaned-contact export backend must
// satisfy.
type ContactSink interface {
	WriteAll(result *models.CleaningResult) error
}
