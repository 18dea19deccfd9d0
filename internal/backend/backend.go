// Package backend declares the API contracts the coordinator consumes.
// Implementations live in subpackages; consumers depend on these interfaces.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/slshults/gpra-web-sub001/internal/domain"
)

// StatusAPI serves the authentication/entitlement status poll
type StatusAPI interface {
	AuthStatus(ctx context.Context) (*AuthStatusResponse, error)
}

// DeletionAPI serves the account-deletion endpoints
type DeletionAPI interface {
	RefundEstimate(ctx context.Context) (*RefundEstimateResponse, error)
	ScheduleDeletion(ctx context.Context, req DeletionSubmission) (*ScheduleDeletionResponse, error)
	DeleteImmediately(ctx context.Context, tier domain.Tier, req DeletionSubmission) error
	CancelScheduledDeletion(ctx context.Context) error
}

// APIError is a backend-rejected request with a structured message.
// The message is surfaced to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request (%d): %s", e.Status, e.Message)
}

// wireDate is the date format the backend uses in JSON bodies
const wireDate = "2006-01-02"

// AuthStatusResponse is the GET auth-status body
type AuthStatusResponse struct {
	Authenticated        bool    `json:"authenticated"`
	HasRequiredAccess    bool    `json:"hasRequiredAccess"`
	Tier                 string  `json:"tier"`
	IsLapsed             bool    `json:"is_lapsed"`
	DaysUntil90          int     `json:"days_until_90"`
	LapseDate            string  `json:"lapse_date"`
	UnpluggedMode        bool    `json:"unplugged_mode"`
	DaysRemaining        int     `json:"days_remaining"`
	DeletionScheduledFor string  `json:"deletion_scheduled_for"`
	DeletionType         string  `json:"deletion_type"`
	ProratedRefundAmount float64 `json:"prorated_refund_amount"`
}

// ToSnapshot converts the wire body to a session snapshot. Unparseable dates
// drop the record they belong to rather than failing the refresh.
func (r *AuthStatusResponse) ToSnapshot(now time.Time) domain.SessionSnapshot {
	snap := domain.NewSessionSnapshot(r.Authenticated, r.HasRequiredAccess, domain.ParseTier(r.Tier), now)
	snap.RestrictedMode = r.UnpluggedMode

	if r.IsLapsed {
		lapsed := &domain.LapsedInfo{
			IsLapsed:    true,
			DaysUntil90: r.DaysUntil90,
		}
		if d, err := time.Parse(wireDate, r.LapseDate); err == nil {
			lapsed.LapseDate = d
		}
		snap.Lapsed = lapsed
	}

	if r.DeletionScheduledFor != "" {
		if d, err := time.Parse(wireDate, r.DeletionScheduledFor); err == nil {
			kind := domain.DeletionScheduled
			if r.DeletionType == string(domain.DeletionImmediate) {
				kind = domain.DeletionImmediate
			}
			snap.DeletionSchedule = &domain.DeletionSchedule{
				ScheduledDate: d,
				Kind:          kind,
				RefundAmount:  r.ProratedRefundAmount,
			}
		}
	}

	return snap
}

// RefundEstimateResponse is the GET refund-estimate body
type RefundEstimateResponse struct {
	RenewalDate   string  `json:"renewal_date"`
	RefundAmount  float64 `json:"refund_amount"`
	DaysRemaining int     `json:"days_remaining"`
}

// ToEstimate converts the wire body to a domain estimate
func (r *RefundEstimateResponse) ToEstimate() (*domain.RefundEstimate, error) {
	renewal, err := time.Parse(wireDate, r.RenewalDate)
	if err != nil {
		return nil, fmt.Errorf("parse renewal_date: %w", err)
	}
	return &domain.RefundEstimate{
		RenewalDate:   renewal,
		RefundAmount:  r.RefundAmount,
		DaysRemaining: r.DaysRemaining,
	}, nil
}

// DeletionSubmission is the body of every deletion mutation
type DeletionSubmission struct {
	ConfirmationPhrase string `json:"confirmation_phrase"`
	Email              string `json:"email"`
}

// ScheduleDeletionResponse is the successful schedule-deletion body
type ScheduleDeletionResponse struct {
	DeletionDate string  `json:"deletion_date"`
	RefundAmount float64 `json:"refund_amount"`
}

// ToSchedule converts the response to the durable deletion record
func (r *ScheduleDeletionResponse) ToSchedule() (*domain.DeletionSchedule, error) {
	d, err := time.Parse(wireDate, r.DeletionDate)
	if err != nil {
		return nil, fmt.Errorf("parse deletion_date: %w", err)
	}
	return &domain.DeletionSchedule{
		ScheduledDate: d,
		Kind:          domain.DeletionScheduled,
		RefundAmount:  r.RefundAmount,
	}, nil
}
