package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"estate-builder/models"
)

// PostgresStore persists pages and their sections to PostgreSQL. Saves are
// last-write-wins: an upsert replaces the page's whole section list.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use store.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS pages (
			id         TEXT PRIMARY KEY,
			slug       TEXT        NOT NULL DEFAULT '',
			title      TEXT        NOT NULL DEFAULT '',
			visible    BOOLEAN     NOT NULL DEFAULT TRUE,
			is_home    BOOLEAN     NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS sections (
			id      TEXT PRIMARY KEY,
			page_id TEXT    NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
			type    VARCHAR(20) NOT NULL,
			ord     INTEGER NOT NULL,
			visible BOOLEAN NOT NULL DEFAULT TRUE,
			is_home BOOLEAN NOT NULL DEFAULT FALSE,
			data    JSONB   NOT NULL DEFAULT '{}'
		);

		CREATE INDEX IF NOT EXISTS idx_sections_page ON sections(page_id, ord);
		CREATE INDEX IF NOT EXISTS idx_pages_slug    ON pages(slug);
	`)
	return err
}

// Get loads a page and its sections in render order. A missing page returns
// sql.ErrNoRows wrapped.
func (ps *PostgresStore) Get(pageID string) (*models.Page, error) {
	page := &models.Page{}
	err := ps.db.QueryRow(`
		SELECT id, slug, title, visible, is_home, updated_at
		FROM pages WHERE id = $1
	`, pageID).Scan(&page.ID, &page.Slug, &page.Title, &page.Visible, &page.IsHome, &page.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: get page %q: %w", pageID, err)
	}

	rows, err := ps.db.Query(`
		SELECT id, type, ord, visible, is_home, data
		FROM sections WHERE page_id = $1
		ORDER BY ord
	`, pageID)
	if err != nil {
		return nil, fmt.Errorf("postgres: get sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		sec := &models.Section{}
		var rawData []byte
		if err := rows.Scan(&sec.ID, &sec.Type, &sec.Order, &sec.Visible, &sec.IsHome, &rawData); err != nil {
			return nil, fmt.Errorf("postgres: scan section: %w", err)
		}
		if err := json.Unmarshal(rawData, &sec.Data); err != nil {
			return nil, fmt.Errorf("postgres: decode section %q data: %w", sec.ID, err)
		}
		page.Sections = append(page.Sections, sec)
	}
	return page, rows.Err()
}

// Upsert writes the page metadata and replaces its section list atomically.
func (ps *PostgresStore) Upsert(page *models.Page) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback is a no-op after commit

	_, err = tx.Exec(`
		INSERT INTO pages (id, slug, title, visible, is_home, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (id) DO UPDATE SET
			slug = EXCLUDED.slug, title = EXCLUDED.title,
			visible = EXCLUDED.visible, is_home = EXCLUDED.is_home,
			updated_at = NOW()
	`, page.ID, page.Slug, page.Title, page.Visible, page.IsHome)
	if err != nil {
		return fmt.Errorf("postgres: upsert page: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM sections WHERE page_id = $1`, page.ID); err != nil {
		return fmt.Errorf("postgres: clear sections: %w", err)
	}

	for _, sec := range page.Sections {
		data, err := json.Marshal(sec.Data)
		if err != nil {
			return fmt.Errorf("postgres: encode section %q data: %w", sec.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO sections (id, page_id, type, ord, visible, is_home, data)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, sec.ID, page.ID, sec.Type, sec.Order, sec.Visible, sec.IsHome, data)
		if err != nil {
			return fmt.Errorf("postgres: insert section: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

// Delete removes a page; sections follow via the cascade.
func (ps *PostgresStore) Delete(pageID string) error {
	if _, err := ps.db.Exec(`DELETE FROM pages WHERE id = $1`, pageID); err != nil {
		return fmt.Errorf("postgres: delete page %q: %w", pageID, err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
