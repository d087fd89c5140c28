package tui

import (
	"encoding/json"
	"sort"

	"estate-builder/models"
)

// editableFields lists the string-valued fields of the section's payload,
// sorted for a stable panel layout. Nested lists (stats, items, images) are
// shown read-only and excluded here.
func editableFields(sec *models.Section) []string {
	tree := payloadTree(sec)
	if tree == nil {
		return nil
	}
	var fields []string
	for k, v := range tree {
		if _, ok := v.(string); ok {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}

// fieldValue returns the persisted value of a payload field.
func fieldValue(sec *models.Section, field string) string {
	tree := payloadTree(sec)
	if tree == nil {
		return ""
	}
	v, _ := tree[field].(string)
	return v
}

func payloadTree(sec *models.Section) map[string]any {
	raw, err := json.Marshal(sec.Data)
	if err != nil {
		return nil
	}
	var tree map[string]map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil
	}
	variant, ok := tree[string(sec.Type)]
	if !ok {
		return nil
	}
	return variant
}
