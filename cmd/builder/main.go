package main

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"estate-builder/builder"
	"estate-builder/config"
	"estate-builder/models"
	"estate-builder/storage"
	"estate-builder/tui"
	"estate-builder/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Estate page builder starting ===")

	store := openStore(cfg, logger)
	defer store.Close()

	page, err := store.Get(cfg.PageID)
	if err != nil {
		logger.Warn("Page %q not found, starting from the landing template", cfg.PageID)
		page = newLandingPage(cfg.PageID)
	}

	editor := builder.NewEditorState()
	session := builder.NewPageSession(page, editor, logger)

	// The debouncer's sink is wired to the program after construction so a
	// settled edit burst lands in the UI as a single preview message.
	var program *tea.Program
	debounce := builder.NewDebouncer(time.Duration(cfg.DebounceMs)*time.Millisecond, func(edit builder.PreviewEdit) {
		if program != nil {
			program.Send(tui.PreviewMsg{Edit: edit})
		}
	})

	model := tui.New(session, store, debounce, logger)
	program = tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		logger.Error("Builder exited with error: %v", err)
		os.Exit(1)
	}
}

// openStore connects to PostgreSQL, falling back to an in-memory store so
// the builder still runs without a database (changes are lost on exit).
func openStore(cfg *config.Config, logger *utils.Logger) storage.RecordStore {
	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Warn("PostgreSQL unavailable (%v) — using in-memory store", err)
		return storage.NewMemoryStore()
	}
	logger.Info("Connected to PostgreSQL")
	return store
}

// newLandingPage builds the single-agent landing template: one protected
// hero section.
func newLandingPage(id string) *models.Page {
	hero := &models.Section{
		ID:      "hero-" + id,
		Type:    models.SectionHero,
		Order:   0,
		Visible: true,
		IsHome:  true,
		Data:    models.DefaultData(models.SectionHero),
	}
	return &models.Page{
		ID:       id,
		Slug:     id,
		Title:    "Ana Sayfa",
		Visible:  true,
		IsHome:   true,
		Sections: []*models.Section{hero},
	}
}
