package importer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/config"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
	"github.com/helpdesk-tools/jira-incident-importer/pkg/record"
)

// Tracker is the issue-tracking service surface the engine depends on. The
// production implementation is jira.Tracker; tests use a fake.
type Tracker interface {
	ListFields() ([]models.Field, error)
	GetCreateMeta(issueType string) (map[string]models.FieldMeta, error)
	GetEditMeta(issueKey string) (map[string]models.FieldMeta, error)
	CreateIssue(fields map[string]interface{}) (string, *models.Rejection, error)
	UpdateIssue(key string, fields map[string]interface{}) (*models.Rejection, error)
	SearchUsers(query string) ([]models.User, error)
	ListTeams() ([]models.Team, error)
	FindIssueByExactTitle(title string) (string, error)
	GetIssueFields(key string, fieldIDs []string) (map[string]interface{}, error)
}

// Engine runs source records through the coercion, creation and
// reconciliation pipeline, one record at a time.
type Engine struct {
	tracker Tracker
	cfg     *config.Config
	out     io.Writer

	catalog  []models.Field
	createIx *Index
}

// New creates an Engine.
func New(tracker Tracker, cfg *config.Config) *Engine {
	return &Engine{
		tracker: tracker,
		cfg:     cfg,
		out:     os.Stdout,
	}
}

// SetOutput redirects the per-record narrative (default os.Stdout).
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

func (e *Engine) printf(format string, args ...interface{}) {
	fmt.Fprintf(e.out, format, args...)
}

// RecordStatus is the terminal state of one processed record.
type RecordStatus string

const (
	// StatusCreated means a ticket was created (reconciliation outcomes
	// may still be mixed).
	StatusCreated RecordStatus = "created"
	// StatusSkipped means a ticket with the same title already exists.
	StatusSkipped RecordStatus = "skipped"
	// StatusFailed means creation exhausted its retry rounds.
	StatusFailed RecordStatus = "failed"
)

// RecordResult summarizes one record's trip through the pipeline.
type RecordResult struct {
	Title   string
	Status  RecordStatus
	Key     string
	Error   string
	Removed []RemovedField
	Skipped []SkippedField

	Reconciled *ReconcileResult

	// Verified maps high-risk field names to whether the verification
	// re-fetch found a value on the created ticket.
	Verified map[string]bool
}

// Prepare loads the field catalog and creation metadata once, so records can
// then be processed without re-fetching the schema. A catalog failure is
// fatal; missing creation metadata is not.
func (e *Engine) Prepare() error {
	catalog, err := e.tracker.ListFields()
	if err != nil {
		return fmt.Errorf("cannot load field catalog: %w", err)
	}
	e.catalog = catalog

	createMeta, err := e.tracker.GetCreateMeta(e.cfg.IssueType)
	if err != nil {
		// Non-fatal: with no creation metadata every custom field is
		// treated as unknown to the create screen and retried during
		// reconciliation.
		e.printf("warning: %v\n", &SchemaLookupFailure{Err: err})
		createMeta = nil
	}
	e.createIx = NewIndex(catalog, createMeta)
	return nil
}

// Run processes records sequentially. A record's fatal failure is recorded
// and the batch continues; only infrastructure failures (field catalog
// unreachable) abort the run.
func (e *Engine) Run(records []record.Record) ([]RecordResult, error) {
	if err := e.Prepare(); err != nil {
		return nil, err
	}

	results := make([]RecordResult, 0, len(records))
	for i, rec := range records {
		e.printf("== record %d/%d: %s\n", i+1, len(records), rec.Title)
		results = append(results, e.Process(rec))
	}
	return results, nil
}

// Process runs a single record through the pipeline. Prepare must have been
// called first; batch runs go through Run, which does both.
func (e *Engine) Process(rec record.Record) RecordResult {
	return e.processRecord(rec, e.createIx)
}

// ReconcileIssue re-runs field reconciliation for an existing ticket against
// a source record's values, skipping creation entirely. Every field the
// record carries is treated as pending.
func (e *Engine) ReconcileIssue(key string, rec record.Record) (*ReconcileResult, error) {
	if e.createIx == nil {
		if err := e.Prepare(); err != nil {
			return nil, err
		}
	}
	plan := e.plan(rec, e.createIx)
	return e.reconcile(key, plan, nil), nil
}

// ResolveAccount resolves a person's display name or email to an account id
// using the directory search heuristics.
func (e *Engine) ResolveAccount(query string) (string, error) {
	return e.resolveAccount(query)
}

func (e *Engine) processRecord(rec record.Record, createIx *Index) RecordResult {
	result := RecordResult{Title: rec.Title, Status: StatusCreated}

	if existing, err := e.tracker.FindIssueByExactTitle(rec.Title); err != nil {
		e.printf("   warning: duplicate check failed: %v\n", err)
	} else if existing != "" {
		e.printf("   ticket '%s' already exists as %s, skipping\n", rec.Title, existing)
		result.Status = StatusSkipped
		result.Key = existing
		return result
	}

	plan := e.plan(rec, createIx)
	result.Skipped = plan.Skipped
	for _, sk := range plan.Skipped {
		e.printf("   skipping '%s': %s\n", sk.Name, sk.Reason)
	}

	outcome, err := e.createWithDegradation(plan, createIx)
	if err != nil {
		var exhausted *DegradationExhausted
		if errors.As(err, &exhausted) {
			e.printf("   failed: %v\n", exhausted)
			result.Status = StatusFailed
			result.Error = exhausted.Error()
			return result
		}
		// Transport failures are recorded the same way; the batch
		// moves on to the next record either way.
		e.printf("   failed: %v\n", err)
		result.Status = StatusFailed
		result.Error = err.Error()
		return result
	}

	result.Key = outcome.Key
	result.Removed = outcome.Removed
	e.printf("   created %s (attempt %d, %d field(s))\n", outcome.Key, outcome.Attempts, len(outcome.Persisted))

	result.Reconciled = e.reconcile(outcome.Key, plan, outcome.Persisted)
	for _, fr := range result.Reconciled.Fields {
		e.printf("   %-10s %s", fr.Outcome, fr.Name)
		if fr.Message != "" {
			e.printf(" (%s)", fr.Message)
		}
		e.printf("\n")
	}

	result.Verified = e.verifyHighRisk(outcome.Key, plan)

	return result
}

// verifyHighRisk re-fetches the created ticket and checks that values for
// the configured fragile fields (team assignment and the like) actually
// stuck, since the tracker is known to drop some of them silently.
func (e *Engine) verifyHighRisk(key string, plan *Plan) map[string]bool {
	var ids []string
	names := make(map[string]string)
	for id, pf := range plan.Custom {
		if e.cfg.IsFragile(pf.Desc.Name) {
			ids = append(ids, id)
			names[id] = pf.Desc.Name
		}
	}
	if len(ids) == 0 {
		return nil
	}

	values, err := e.tracker.GetIssueFields(key, ids)
	if err != nil {
		e.printf("   warning: verification re-fetch failed: %v\n", err)
		return nil
	}

	verified := make(map[string]bool, len(ids))
	for _, id := range ids {
		present := values[id] != nil
		verified[names[id]] = present
		if present {
			e.printf("   verified %s on %s\n", names[id], key)
		} else {
			e.printf("   warning: %s did not stick on %s\n", names[id], key)
		}
	}
	return verified
}
