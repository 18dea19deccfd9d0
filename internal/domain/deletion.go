package domain

import "time"

// DeletionPath identifies which branch of the account-deletion flow is active
type DeletionPath string

const (
	PathInitial   DeletionPath = "initial"
	PathScheduled DeletionPath = "scheduled"
	PathImmediate DeletionPath = "immediate"
)

// Confirmation phrases the user must retype, byte-exact, before submission
const (
	phraseScheduled = "If I delete it I cannot get it back"
	phraseImmediate = "If I delete now I cannot get my data or money back"
)

// Phrase returns the confirmation phrase required on this path, or "" for
// the initial state where no submission is possible.
func (p DeletionPath) Phrase() string {
	switch p {
	case PathScheduled:
		return phraseScheduled
	case PathImmediate:
		return phraseImmediate
	default:
		return ""
	}
}

// SubmissionState tracks an in-flight deletion submission
type SubmissionState string

const (
	SubmitIdle      SubmissionState = "idle"
	SubmitInFlight  SubmissionState = "submitting"
	SubmitSucceeded SubmissionState = "succeeded"
	SubmitFailed    SubmissionState = "failed"
)

// RefundEstimate is the prorated refund preview shown during confirmation
type RefundEstimate struct {
	RenewalDate   time.Time
	RefundAmount  float64
	DaysRemaining int
}

// DeletionRequest is the transient, in-flight state of the deletion flow.
// The durable record is SessionSnapshot.DeletionSchedule.
type DeletionRequest struct {
	Path           DeletionPath
	TypedPhrase    string
	Email          string
	RefundEstimate *RefundEstimate
	Submission     SubmissionState
}

// CanSubmit evaluates the submission guard from current input. It is computed
// fresh on every call; there is deliberately no cached "confirmed" flag.
func (r DeletionRequest) CanSubmit() bool {
	if r.Path == PathInitial {
		return false
	}
	return r.TypedPhrase == r.Path.Phrase() && r.Email != ""
}

// PhraseMismatch reports whether the typed phrase is non-empty and wrong.
// Used for the inline hint only; the guard is CanSubmit.
func (r DeletionRequest) PhraseMismatch() bool {
	if r.Path == PathInitial {
		return false
	}
	return r.TypedPhrase != "" && r.TypedPhrase != r.Path.Phrase()
}
