package importer

import (
	"fmt"

	"github.com/helpdesk-tools/jira-incident-importer/pkg/models"
)

// DegradationExhausted reports that the creation loop ran out of retry
// rounds (or of removable fields) for one record. Fatal for that record
// only; the batch continues.
type DegradationExhausted struct {
	Attempts  int
	Rejection *models.Rejection
}

func (e *DegradationExhausted) Error() string {
	msg := fmt.Sprintf("creation failed after %d attempt(s)", e.Attempts)
	if e.Rejection != nil {
		msg += ": " + e.Rejection.Summary()
	}
	return msg
}

// SchemaLookupFailure reports that the field catalog or screen metadata
// could not be fetched. Non-fatal: the caller degrades to treating the
// affected fields as unknown.
type SchemaLookupFailure struct {
	Err error
}

func (e *SchemaLookupFailure) Error() string {
	return fmt.Sprintf("schema lookup failed: %v", e.Err)
}

func (e *SchemaLookupFailure) Unwrap() error {
	return e.Err
}

// CoercionFailure reports that a value could not be shaped for its field.
// Non-fatal: the field is dropped from the current submission.
type CoercionFailure struct {
	FieldName string
	Reason    string
}

func (e *CoercionFailure) Error() string {
	return fmt.Sprintf("cannot coerce value for field '%s': %s", e.FieldName, e.Reason)
}
