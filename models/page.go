package models

import "time"

// Page is one agent landing page: ordered sections plus page-level metadata.
type Page struct {
	ID        string     `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Visible   bool       `json:"visible"`
	IsHome    bool       `json:"is_home"`
	Sections  []*Section `json:"sections"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Section returns the section with the given id, or nil if absent.
func (p *Page) Section(id string) *Section {
	for _, s := range p.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}
