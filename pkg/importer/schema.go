package importer

import (
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// Option is one allowed value of a constrained field.
type Option struct {
	ID    string
	Label string
}

// Descriptor identifies one remote field: its stable id, the display name
// source records address it by, its schema type, and the allowed values the
// relevant screen exposes for it. Descriptors are built fresh per run and
// never persisted.
type Descriptor struct {
	ID      string
	Name    string
	Type    string // option, priority, array, user, date, team, url, string, text, ...
	Items   string // array item kind: labels, user, option, ...
	Allowed []Option

	// OnScreen reports whether the metadata this index was built from
	// (creation or edit screen) exposes the field. A field can exist in
	// the catalog yet be on neither screen.
	OnScreen bool
}

// Index provides name and id lookups over the field catalog, merged with the
// metadata of one specific screen.
type Index struct {
	byName map[string][]*Descriptor
	byID   map[string]*Descriptor
}

// NewIndex builds an index from the full field catalog and the fieldId ->
// constraints map of the screen currently relevant (create metadata when
// planning a creation, edit metadata when reconciling). meta may be nil, in
// which case every field is treated as off-screen and unconstrained.
func NewIndex(catalog []models.Field, meta map[string]models.FieldMeta) *Index {
	ix := &Index{
		byName: make(map[string][]*Descriptor),
		byID:   make(map[string]*Descriptor),
	}

	for _, f := range catalog {
		d := &Descriptor{
			ID:    f.ID,
			Name:  f.Name,
			Type:  f.Schema.Type,
			Items: itemKind(f.Schema),
		}

		if m, ok := meta[f.ID]; ok {
			d.OnScreen = true
			if m.Schema.Type != "" {
				d.Type = m.Schema.Type
				d.Items = itemKind(m.Schema)
			}
			d.Allowed = toOptions(m.AllowedValues)
		}

		ix.byID[d.ID] = d
		key := nameKey(d.Name)
		ix.byName[key] = append(ix.byName[key], d)
	}

	return ix
}

// ByName resolves a display name to a descriptor. When two catalog entries
// share a display name, the one exposed by this index's screen wins;
// otherwise the first seen is kept. Returns nil for unknown names: callers
// skip, log, and continue.
func (ix *Index) ByName(name string) *Descriptor {
	candidates := ix.byName[nameKey(name)]
	if len(candidates) == 0 {
		return nil
	}
	for _, d := range candidates {
		if d.OnScreen {
			return d
		}
	}
	return candidates[0]
}

// ByID resolves a field id to its descriptor, or nil.
func (ix *Index) ByID(id string) *Descriptor {
	return ix.byID[id]
}

// NameOf returns the display name of a field id, falling back to the id
// itself for fields missing from the catalog.
func (ix *Index) NameOf(id string) string {
	if d := ix.byID[id]; d != nil {
		return d.Name
	}
	return id
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// itemKind normalizes the array item kind: label lists are flagged by the
// schema's system marker, everything else keeps the items type.
func itemKind(s models.FieldSchema) string {
	if s.System == "labels" || s.Custom == "labels" {
		return "labels"
	}
	if s.Type == "array" && s.Items == "string" && s.System == "" && s.Custom == "" {
		return "labels"
	}
	return s.Items
}

func toOptions(values []models.AllowedValue) []Option {
	if len(values) == 0 {
		return nil
	}
	opts := make([]Option, 0, len(values))
	for _, v := range values {
		id := v.ID
		if id == "" {
			id = v.Value
		}
		opts = append(opts, Option{ID: id, Label: v.Label()})
	}
	return opts
}
