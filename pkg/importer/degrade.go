package importer

import (
	"strings"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// maxCreateAttempts bounds the degradation loop: the initial submission plus
// two reduction rounds.
const maxCreateAttempts = 3

// mandatoryFields can never be removed by the degradation loop.
var mandatoryFields = map[string]bool{
	"project":     true,
	"summary":     true,
	"description": true,
	"issuetype":   true,
}

// RemovedField records one field dropped during degradation and why.
type RemovedField struct {
	ID     string
	Name   string
	Reason string
}

// CreateOutcome is the result of a successful degradation loop: the created
// ticket key, the exact field set that was persisted, and what was dropped
// along the way.
type CreateOutcome struct {
	Key       string
	Persisted map[string]interface{}
	Removed   []RemovedField
	Attempts  int
}

// createWithDegradation submits the creation-eligible field set and, on
// partial rejection, removes offending fields under the protection rules and
// retries, at most maxCreateAttempts submissions in total. Transport-level
// failures are returned as-is; running out of rounds (or of removable
// fields) returns a *DegradationExhausted.
func (e *Engine) createWithDegradation(plan *Plan, ix *Index) (*CreateOutcome, error) {
	candidate := make(map[string]interface{}, len(plan.Create))
	for id, v := range plan.Create {
		candidate[id] = v
	}

	var removed []RemovedField
	drop := func(id, reason string) {
		delete(candidate, id)
		removed = append(removed, RemovedField{ID: id, Name: ix.NameOf(id), Reason: reason})
		e.printf("   - omitting field %s: %s\n", ix.NameOf(id), reason)
	}

	// Known-fragile fields whose value cannot be confirmed ahead of
	// submission are dropped before the first attempt.
	for id := range candidate {
		if mandatoryFields[id] {
			continue
		}
		pf, ok := plan.Custom[id]
		if !ok {
			continue
		}
		if e.cfg.IsFragile(pf.Desc.Name) && !StructurallyValid(pf.Desc, pf.Value) {
			drop(id, "value could not be confirmed before submission")
		}
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		key, rej, err := e.tracker.CreateIssue(candidate)
		if err != nil {
			return nil, err
		}
		if rej == nil {
			return &CreateOutcome{
				Key:       key,
				Persisted: candidate,
				Removed:   removed,
				Attempts:  attempt,
			}, nil
		}

		if attempt == maxCreateAttempts {
			return nil, &DegradationExhausted{Attempts: attempt, Rejection: rej}
		}

		removable := e.removalSet(rej, candidate, plan, ix)
		if len(removable) > 0 {
			e.printf("   some fields were rejected, retrying without them\n")
			for id, reason := range removable {
				drop(id, reason)
			}
		} else {
			e.printf("   rejection names no removable field, retrying\n")
		}
	}

	// Unreachable: the loop returns on success or exhaustion.
	return nil, &DegradationExhausted{Attempts: maxCreateAttempts}
}

// removalSet decides which of the currently submitted fields to drop in
// response to a rejection. Fields named in per-field errors are always
// candidates; general messages are scanned against the configured keyword
// table to pick up fields the tracker complained about without naming.
// Protected fields survive unless explicitly named or structurally invalid.
func (e *Engine) removalSet(rej *models.Rejection, candidate map[string]interface{}, plan *Plan, ix *Index) map[string]string {
	removable := make(map[string]string)

	explicit := make(map[string]bool, len(rej.FieldErrors))
	for id, msg := range rej.FieldErrors {
		if _, ok := candidate[id]; !ok {
			continue
		}
		if mandatoryFields[id] {
			continue
		}
		explicit[id] = true
		removable[id] = "rejected: " + msg
	}

	for _, msg := range rej.Messages {
		lower := strings.ToLower(msg)
		for keyword, fieldName := range e.cfg.RejectionKeywords {
			if !strings.Contains(lower, strings.ToLower(keyword)) {
				continue
			}
			d := ix.ByName(fieldName)
			if d == nil || mandatoryFields[d.ID] {
				continue
			}
			if _, ok := candidate[d.ID]; !ok {
				continue
			}
			if _, ok := removable[d.ID]; !ok {
				removable[d.ID] = "implicated by rejection message"
			}
		}
	}

	// Protection rules: a protected field is only dropped when the
	// rejection names its exact id or its own coerced value fails the
	// structural check. A complaint about an unrelated field never takes
	// a protected field with it.
	for id := range removable {
		pf, ok := plan.Custom[id]
		if !ok {
			continue
		}
		if !e.cfg.IsProtected(pf.Desc.Name) {
			continue
		}
		if explicit[id] || !StructurallyValid(pf.Desc, pf.Value) {
			continue
		}
		delete(removable, id)
	}

	return removable
}
