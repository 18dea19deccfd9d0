package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slshults/gpra-web-sub001/internal/domain"
)

func TestAuthStatusResponse_ToSnapshot(t *testing.T) {
	now := time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC)

	resp := &AuthStatusResponse{
		Authenticated:        true,
		HasRequiredAccess:    true,
		Tier:                 "thegoods",
		IsLapsed:             true,
		DaysUntil90:          42,
		LapseDate:            "2025-04-01",
		UnpluggedMode:        true,
		DeletionScheduledFor: "2025-06-01",
		DeletionType:         "scheduled",
		ProratedRefundAmount: 12.50,
	}

	snap := resp.ToSnapshot(now)

	assert.True(t, snap.Authenticated)
	assert.True(t, snap.HasRequiredAccess)
	assert.Equal(t, domain.TierPaid, snap.Tier)
	assert.True(t, snap.RestrictedMode)
	assert.Equal(t, now, snap.LastRefreshedAt)

	require.NotNil(t, snap.Lapsed)
	assert.Equal(t, 42, snap.Lapsed.DaysUntil90)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), snap.Lapsed.LapseDate)

	require.NotNil(t, snap.DeletionSchedule)
	assert.Equal(t, domain.DeletionScheduled, snap.DeletionSchedule.Kind)
	assert.Equal(t, 12.50, snap.DeletionSchedule.RefundAmount)
}

func TestAuthStatusResponse_ToSnapshot_EntitlementNeedsAuth(t *testing.T) {
	resp := &AuthStatusResponse{Authenticated: false, HasRequiredAccess: true, Tier: "free"}
	snap := resp.ToSnapshot(time.Now())

	assert.False(t, snap.HasRequiredAccess)
	assert.Nil(t, snap.Lapsed)
	assert.Nil(t, snap.DeletionSchedule)
}

func TestAuthStatusResponse_ToSnapshot_BadDeletionDateDropsRecord(t *testing.T) {
	resp := &AuthStatusResponse{
		Authenticated:        true,
		DeletionScheduledFor: "not-a-date",
	}
	snap := resp.ToSnapshot(time.Now())
	assert.Nil(t, snap.DeletionSchedule)
}

func TestRefundEstimateResponse_ToEstimate(t *testing.T) {
	resp := &RefundEstimateResponse{
		RenewalDate:   "2025-06-01",
		RefundAmount:  12.50,
		DaysRemaining: 20,
	}

	est, err := resp.ToEstimate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), est.RenewalDate)
	assert.Equal(t, 12.50, est.RefundAmount)
	assert.Equal(t, 20, est.DaysRemaining)

	_, err = (&RefundEstimateResponse{RenewalDate: "06/01/2025"}).ToEstimate()
	assert.Error(t, err)
}

func TestScheduleDeletionResponse_ToSchedule(t *testing.T) {
	resp := &ScheduleDeletionResponse{DeletionDate: "2025-06-01", RefundAmount: 12.50}

	sched, err := resp.ToSchedule()
	require.NoError(t, err)
	assert.Equal(t, domain.DeletionScheduled, sched.Kind)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), sched.ScheduledDate)
	assert.Equal(t, 12.50, sched.RefundAmount)
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Status: 403, Message: "deletion already scheduled"}
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "deletion already scheduled")
}
