package builder

import (
	"encoding/json"
	"fmt"

	"estate-builder/models"
)

// EditorState tracks the builder's transient, unpersisted editing state:
// the edit-mode flag, the currently selected section (weak, lookup-only
// reference), and the per-section override properties accumulated since the
// last save. Overrides are opinion-free: the panel UI is trusted to emit
// only fields valid for the section's type, so no schema validation happens
// here.
type EditorState struct {
	editMode   bool
	selectedID string
	overrides  map[string]map[string]any
}

// NewEditorState returns an empty editor state with edit mode off.
func NewEditorState() *EditorState {
	return &EditorState{overrides: make(map[string]map[string]any)}
}

// EditMode reports whether the builder is in edit mode.
func (e *EditorState) EditMode() bool { return e.editMode }

// SetEditMode switches edit mode on or off.
func (e *EditorState) SetEditMode(on bool) { e.editMode = on }

// Select sets the current selection. The empty id clears it.
func (e *EditorState) Select(id string) { e.selectedID = id }

// SelectedID returns the selected section id, or "" when nothing is
// selected.
func (e *EditorState) SelectedID() string { return e.selectedID }

// UpdateSectionData merges partial into the in-memory override for id.
// Nothing is persisted and nothing is validated.
func (e *EditorState) UpdateSectionData(id string, partial map[string]any) {
	if id == "" || len(partial) == 0 {
		return
	}
	existing, ok := e.overrides[id]
	if !ok {
		existing = make(map[string]any, len(partial))
		e.overrides[id] = existing
	}
	for k, v := range partial {
		existing[k] = v
	}
}

// Override returns the accumulated override for id, or nil.
func (e *EditorState) Override(id string) map[string]any { return e.overrides[id] }

// Commit returns the full current override mapping for persistence. The
// overrides are NOT cleared: the caller decides whether to clear after the
// external write succeeds.
func (e *EditorState) Commit() map[string]map[string]any { return e.overrides }

// ClearOverrides drops all accumulated overrides, typically after a
// successful save.
func (e *EditorState) ClearOverrides() {
	e.overrides = make(map[string]map[string]any)
}

// ApplyOverrides folds the override fields for a section into its typed
// payload via a JSON round-trip, so a save writes what the preview showed.
// Fields that do not exist on the variant are dropped by the decode.
func ApplyOverrides(sec *models.Section, fields map[string]any) error {
	if sec == nil || len(fields) == 0 {
		return nil
	}
	raw, err := json.Marshal(sec.Data)
	if err != nil {
		return fmt.Errorf("builder: marshal section data: %w", err)
	}
	var tree map[string]map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("builder: decode section data: %w", err)
	}
	variant := tree[string(sec.Type)]
	if variant == nil {
		variant = make(map[string]any)
		tree[string(sec.Type)] = variant
	}
	for k, v := range fields {
		variant[k] = v
	}
	merged, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("builder: marshal merged data: %w", err)
	}
	var data models.SectionData
	if err := json.Unmarshal(merged, &data); err != nil {
		return fmt.Errorf("builder: rebuild section data: %w", err)
	}
	sec.Data = data
	return nil
}
