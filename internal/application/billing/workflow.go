package billing

import "errors"

// State is the intake workflow phase of a composition session. Transitions
// are Idle -> Validating -> Submitting -> Succeeded or Failed; a validation
// failure drops back to Idle with field messages instead of entering Failed,
// which is reserved for backend failures.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// ErrSubmissionInFlight rejects a second submission while one is already
// running for the session. One document at a time per user.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// ErrNoUploadStaged rejects an upload-path submission when no PDF has been
// staged for the session.
var ErrNoUploadStaged = errors.New("no PDF file staged for submission")

// WorkflowStatus is the observable state of a session's intake workflow.
type WorkflowStatus struct {
	State State `json:"state"`
	// DocumentID identifies the sealed document after a successful run.
	DocumentID string `json:"documentId,omitempty"`
	// Errors carries the user-facing failure messages of the last run.
	Errors []string `json:"errors,omitempty"`
}
