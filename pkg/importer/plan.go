package importer

import (
	"github.com/helpdesk-tools/jira-incident-importer/pkg/jira"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/record"
)

// PlannedField is one custom field resolved from a source record: its
// descriptor, the raw source value, and the coerced submission value.
type PlannedField struct {
	Desc  *Descriptor
	Raw   string
	Value interface{}
}

// SkippedField records a source value that never made it into a submission.
type SkippedField struct {
	Name   string
	Reason string
}

// Plan maps one source record onto field identifiers: the creation-eligible
// set (fields exposed on the create screen, plus the mandatory fields) and
// the full custom-field set, from which the reconciler later derives what is
// still owed.
type Plan struct {
	Record record.Record

	// Create is the fieldId -> value map for the creation request.
	Create map[string]interface{}

	// Custom holds every resolvable custom field by id, whether creation
	// eligible or deferred to the edit screen.
	Custom map[string]PlannedField

	// Deferred lists ids present in Custom but excluded from Create
	// because the create screen does not expose them.
	Deferred []string

	Skipped []SkippedField
}

// plan builds the submission plan for one record against the creation-screen
// index. Unknown fields and blank values are skipped, never errors.
func (e *Engine) plan(rec record.Record, ix *Index) *Plan {
	p := &Plan{
		Record: rec,
		Create: make(map[string]interface{}),
		Custom: make(map[string]PlannedField),
	}

	p.Create["project"] = map[string]interface{}{"key": e.cfg.ProjectKey}
	p.Create["summary"] = rec.Title
	p.Create["issuetype"] = map[string]interface{}{"name": e.cfg.IssueType}
	if rec.Description != "" {
		p.Create["description"] = jira.ADFDocument(rec.Description)
	}

	if rec.Priority != "" {
		p.Create["priority"] = e.coercePriority(rec.Priority, ix)
	}

	for name, raw := range rec.Fields {
		d := ix.ByName(name)
		if d == nil {
			p.Skipped = append(p.Skipped, SkippedField{Name: name, Reason: "field not found in tracker"})
			continue
		}

		value := Coerce(d, raw)
		if value == nil {
			p.Skipped = append(p.Skipped, SkippedField{Name: name, Reason: "blank value"})
			continue
		}

		p.Custom[d.ID] = PlannedField{Desc: d, Raw: raw, Value: value}
		if d.OnScreen {
			p.Create[d.ID] = value
		} else {
			p.Deferred = append(p.Deferred, d.ID)
		}
	}

	return p
}

// coercePriority translates the source label through the configured priority
// name map, then coerces against the priority field's allowed values. With
// no match the raw label is submitted by name as a last resort.
func (e *Engine) coercePriority(raw string, ix *Index) interface{} {
	if translated, ok := e.cfg.PriorityNames[raw]; ok {
		raw = translated
	}

	if d := ix.ByID("priority"); d != nil {
		if v := Coerce(d, raw); v != nil {
			return v
		}
	}

	return map[string]interface{}{"name": raw}
}
