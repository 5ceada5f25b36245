package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRef is a placeholder account reference produced by coercing a user
// field. The raw query is resolved against the user directory before
// submission; an unresolved ref is never sent.
type UserRef struct {
	Query     string `json:"-"`
	AccountID string `json:"accountId,omitempty"`
}

// Coerce shapes a raw source string into the typed value a field's schema
// expects. Returns nil for blank input, which means "omit this field
// entirely", never "submit empty".
func Coerce(d *Descriptor, raw string) interface{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	switch d.Type {
	case "option", "priority":
		if id := Match(raw, d.Allowed); id != "" {
			return map[string]interface{}{"id": id}
		}
		// Last resort: reference by name and let the tracker decide.
		if d.Type == "priority" {
			return map[string]interface{}{"name": raw}
		}
		return map[string]interface{}{"value": raw}

	case "array":
		return coerceArray(d, raw)

	case "user":
		return &UserRef{Query: raw}

	case "date":
		return rewriteDate(raw)

	case "team":
		return coerceTeam(d, raw)

	default:
		// url, string, text, and anything unrecognized pass through.
		return raw
	}
}

func coerceArray(d *Descriptor, raw string) interface{} {
	tokens := splitList(raw)
	if len(tokens) == 0 {
		return nil
	}

	switch d.Items {
	case "labels":
		return tokens

	case "user":
		refs := make([]interface{}, len(tokens))
		for i, t := range tokens {
			refs[i] = &UserRef{Query: t}
		}
		return refs

	default:
		values := make([]interface{}, len(tokens))
		for i, t := range tokens {
			if id := Match(t, d.Allowed); id != "" {
				values[i] = map[string]interface{}{"id": id}
			} else {
				values[i] = map[string]interface{}{"value": t}
			}
		}
		return values
	}
}

// coerceTeam submits a bare identifier, not an object: the matched reference
// id when the allowed values contain the team, otherwise the raw value, which
// may already be a UUID.
func coerceTeam(d *Descriptor, raw string) interface{} {
	if id := Match(raw, d.Allowed); id != "" {
		return id
	}
	return raw
}

// rewriteDate repairs DD/MM/YYYY into YYYY-MM-DD and keeps ISO dates
// unchanged. Any other shape passes through verbatim: date repair is
// best-effort, the tracker rejects what it cannot parse.
func rewriteDate(raw string) string {
	if t, err := time.Parse("02/01/2006", raw); err == nil {
		return t.Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", raw); err == nil {
		return raw
	}
	return raw
}

// IsUUID reports whether s is a canonical 8-4-4-4-12 UUID.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// splitList splits a comma-separated value, trimming tokens and dropping
// empties.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// StructurallyValid reports whether a coerced value can be confirmed as
// submittable ahead of the request. Most shapes always are; user references
// need a resolved account id, and team values need a known reference id or a
// UUID; a free-text team is not confirmable.
func StructurallyValid(d *Descriptor, v interface{}) bool {
	if v == nil {
		return false
	}

	switch d.Type {
	case "user":
		ref, ok := v.(*UserRef)
		return ok && ref.AccountID != ""

	case "team":
		s, ok := v.(string)
		if !ok {
			return false
		}
		if IsUUID(s) {
			return true
		}
		for _, o := range d.Allowed {
			if o.ID == s {
				return true
			}
		}
		return false

	case "array":
		if d.Items != "user" {
			return true
		}
		refs, ok := v.([]interface{})
		if !ok {
			return false
		}
		for _, r := range refs {
			ref, ok := r.(*UserRef)
			if !ok || ref.AccountID == "" {
				return false
			}
		}
		return true

	default:
		return true
	}
}
