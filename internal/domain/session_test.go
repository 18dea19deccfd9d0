package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionSnapshot_EntitlementRequiresAuth(t *testing.T) {
	now := time.Now()

	snap := NewSessionSnapshot(false, true, TierPaid, now)
	assert.False(t, snap.Authenticated)
	assert.False(t, snap.HasRequiredAccess, "entitlement must not survive without authentication")

	snap = NewSessionSnapshot(true, true, TierPaid, now)
	assert.True(t, snap.HasRequiredAccess)
}

func TestConservativeSnapshot(t *testing.T) {
	now := time.Now()
	snap := ConservativeSnapshot(now)

	assert.False(t, snap.Authenticated)
	assert.False(t, snap.HasRequiredAccess)
	assert.Equal(t, TierFree, snap.Tier)
	assert.Nil(t, snap.Lapsed)
	assert.Nil(t, snap.DeletionSchedule)
	assert.Equal(t, now, snap.LastRefreshedAt)
}

func TestParseTier(t *testing.T) {
	assert.Equal(t, TierFree, ParseTier("free"))
	assert.Equal(t, TierFree, ParseTier(""))
	assert.Equal(t, TierPaid, ParseTier("thegoods"))
	assert.Equal(t, TierPaid, ParseTier("themost"))
}
