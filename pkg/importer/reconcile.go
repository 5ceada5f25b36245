package importer

import (
	"sort"
	"strings"
)

// FieldOutcome is the terminal state of one field after reconciliation.
type FieldOutcome string

const (
	// OutcomeConfirmed means the follow-up update persisted the field.
	OutcomeConfirmed FieldOutcome = "confirmed"
	// OutcomeRejected means the tracker refused the field; the message
	// carries its reason.
	OutcomeRejected FieldOutcome = "rejected"
	// OutcomeSkipped means the field was never submitted, typically
	// because a reference could not be resolved.
	OutcomeSkipped FieldOutcome = "skipped"
)

// FieldReport is the per-field result of the reconciliation pass.
type FieldReport struct {
	ID      string
	Name    string
	Outcome FieldOutcome
	Message string
}

// ReconcileResult collects the per-field outcomes of one reconciliation.
type ReconcileResult struct {
	Fields []FieldReport
}

// reconcile re-coerces the fields the creation pass did not persist against
// the ticket's edit-screen metadata and submits them as a best-effort
// follow-up. Protected fields are deliberately re-submitted even when
// nominally persisted, to guard against silent server-side drops. This phase
// reports mixed per-field outcomes and never fails the run.
func (e *Engine) reconcile(key string, plan *Plan, persisted map[string]interface{}) *ReconcileResult {
	result := &ReconcileResult{}

	pending := e.pendingFields(plan, persisted)
	if len(pending) == 0 {
		return result
	}

	editMeta, err := e.tracker.GetEditMeta(key)
	if err != nil {
		// Degrade to the catalog-only view of the fields.
		e.printf("   warning: %v\n", &SchemaLookupFailure{Err: err})
		editMeta = nil
	}
	editIx := NewIndex(e.catalog, editMeta)

	update := make(map[string]interface{})
	reports := make(map[string]*FieldReport)

	for _, id := range pending {
		pf := plan.Custom[id]
		report := &FieldReport{ID: id, Name: pf.Desc.Name}
		reports[id] = report

		d := editIx.ByID(id)
		if d == nil {
			d = pf.Desc
		}

		value := Coerce(d, pf.Raw)
		if value == nil {
			report.Outcome = OutcomeSkipped
			report.Message = "blank value"
			continue
		}

		value, skipReason := e.resolveReferences(d, value)
		if skipReason != "" {
			report.Outcome = OutcomeSkipped
			report.Message = skipReason
			e.printf("   warning: skipping %s: %s\n", pf.Desc.Name, skipReason)
			continue
		}

		update[id] = value
	}

	e.submitReconcileUpdate(key, update, reports)

	for _, id := range pending {
		result.Fields = append(result.Fields, *reports[id])
	}
	return result
}

// pendingFields returns the ids still owed after creation: everything in the
// full set that was not persisted, plus protected fields for
// re-confirmation. Sorted by field id for stable reporting.
func (e *Engine) pendingFields(plan *Plan, persisted map[string]interface{}) []string {
	var pending []string
	for id, pf := range plan.Custom {
		if _, ok := persisted[id]; ok && !e.cfg.IsProtected(pf.Desc.Name) {
			continue
		}
		pending = append(pending, id)
	}
	sort.Strings(pending)
	return pending
}

// submitReconcileUpdate sends one follow-up update and assigns per-field
// outcomes. On a structured rejection the named fields are marked rejected
// and the remainder is resubmitted once, so that fields the tracker did
// accept are still confirmed rather than hidden behind the failure.
func (e *Engine) submitReconcileUpdate(key string, update map[string]interface{}, reports map[string]*FieldReport) {
	if len(update) == 0 {
		return
	}

	confirmAll := func(fields map[string]interface{}) {
		for id := range fields {
			reports[id].Outcome = OutcomeConfirmed
		}
	}
	rejectAll := func(fields map[string]interface{}, msg string) {
		for id := range fields {
			reports[id].Outcome = OutcomeRejected
			reports[id].Message = msg
		}
	}

	rej, err := e.tracker.UpdateIssue(key, update)
	if err != nil {
		rejectAll(update, err.Error())
		return
	}
	if rej == nil {
		confirmAll(update)
		return
	}

	remainder := make(map[string]interface{})
	for id, v := range update {
		if msg, ok := rej.FieldErrors[id]; ok {
			reports[id].Outcome = OutcomeRejected
			reports[id].Message = msg
			continue
		}
		remainder[id] = v
	}

	if len(remainder) == 0 {
		return
	}
	if len(rej.FieldErrors) == 0 {
		// Nothing was named; the whole request was refused.
		rejectAll(remainder, strings.Join(rej.Messages, "; "))
		return
	}

	rej2, err := e.tracker.UpdateIssue(key, remainder)
	if err != nil {
		rejectAll(remainder, err.Error())
		return
	}
	if rej2 == nil {
		confirmAll(remainder)
		return
	}
	for id := range remainder {
		if msg, ok := rej2.FieldErrors[id]; ok {
			reports[id].Outcome = OutcomeRejected
			reports[id].Message = msg
		} else {
			reports[id].Outcome = OutcomeRejected
			reports[id].Message = strings.Join(rej2.Messages, "; ")
		}
	}
}

// resolveReferences fills in account ids for user placeholders and team
// identifiers for unconfirmed team values. A non-empty skip reason means the
// field must be left out of the update.
func (e *Engine) resolveReferences(d *Descriptor, value interface{}) (interface{}, string) {
	switch v := value.(type) {
	case *UserRef:
		accountID, err := e.resolveAccount(v.Query)
		if err != nil {
			return nil, "user search failed: " + err.Error()
		}
		if accountID == "" {
			return nil, "no matching user for '" + v.Query + "'"
		}
		v.AccountID = accountID
		return v, ""

	case []interface{}:
		for _, item := range v {
			ref, ok := item.(*UserRef)
			if !ok {
				return v, ""
			}
			accountID, err := e.resolveAccount(ref.Query)
			if err != nil {
				return nil, "user search failed: " + err.Error()
			}
			if accountID == "" {
				return nil, "no matching user for '" + ref.Query + "'"
			}
			ref.AccountID = accountID
		}
		return v, ""

	case string:
		if d.Type != "team" || StructurallyValid(d, v) {
			return v, ""
		}
		id, err := e.resolveTeam(v)
		if err != nil {
			return nil, "team lookup failed: " + err.Error()
		}
		if id == "" {
			return nil, "no matching team for '" + v + "'"
		}
		return id, ""

	default:
		return value, ""
	}
}

// resolveAccount searches the user directory for a raw name. Preference
// order: exact display-name/login/email match, then containment in either
// direction. An 8+ character query that returns nothing is retried with its
// first 8 characters. With results but no preferred match, the first
// directory entry wins. Returns "" when nothing matches at all.
func (e *Engine) resolveAccount(query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	users, err := e.tracker.SearchUsers(query)
	if err != nil {
		return "", err
	}

	if len(users) == 0 {
		runes := []rune(query)
		if len(runes) < 8 {
			return "", nil
		}
		users, err = e.tracker.SearchUsers(string(runes[:8]))
		if err != nil {
			return "", err
		}
		if len(users) == 0 {
			return "", nil
		}
	}

	for _, u := range users {
		if strings.EqualFold(u.DisplayName, query) ||
			strings.EqualFold(u.Name, query) ||
			strings.EqualFold(u.EmailAddress, query) {
			return u.AccountID, nil
		}
	}

	lower := strings.ToLower(query)
	for _, u := range users {
		display := strings.ToLower(u.DisplayName)
		if display == "" {
			continue
		}
		if strings.Contains(display, lower) || strings.Contains(lower, display) {
			return u.AccountID, nil
		}
	}

	return users[0].AccountID, nil
}

// resolveTeam matches a raw team value against the team directory by name or
// id. Unlike user resolution there is no truncated retry.
func (e *Engine) resolveTeam(raw string) (string, error) {
	teams, err := e.tracker.ListTeams()
	if err != nil {
		return "", err
	}

	options := make([]Option, 0, len(teams))
	for _, t := range teams {
		id := t.ID
		if id == "" {
			id = t.TeamID
		}
		options = append(options, Option{ID: id, Label: t.Name})
	}

	return Match(raw, options), nil
}
