package domain

import "time"

// Tier is the subscription tier as far as the client cares: free or paid
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// ParseTier maps a backend tier name to a client tier.
// The backend has several paid tier names; anything other than "free" is paid.
func ParseTier(name string) Tier {
	if name == "" || name == string(TierFree) {
		return TierFree
	}
	return TierPaid
}

// LapsedInfo describes a lapsed subscription's grace window
type LapsedInfo struct {
	IsLapsed    bool
	LapseDate   time.Time
	DaysUntil90 int
}

// DeletionKind distinguishes the two deletion record types
type DeletionKind string

const (
	DeletionScheduled DeletionKind = "scheduled"
	DeletionImmediate DeletionKind = "immediate"
)

// DeletionSchedule is the durable record of a pending account deletion
type DeletionSchedule struct {
	ScheduledDate time.Time
	Kind          DeletionKind
	RefundAmount  float64
}

// SessionSnapshot is an immutable view of authentication, entitlement and
// lifecycle state. The store replaces it wholesale on every refresh; consumers
// must never mutate it.
type SessionSnapshot struct {
	Authenticated     bool
	HasRequiredAccess bool
	Tier              Tier
	Lapsed            *LapsedInfo
	RestrictedMode    bool
	DeletionSchedule  *DeletionSchedule
	LastRefreshedAt   time.Time
}

// NewSessionSnapshot builds a snapshot enforcing the entitlement invariant:
// HasRequiredAccess can only hold for an authenticated session.
func NewSessionSnapshot(authenticated, hasRequiredAccess bool, tier Tier, refreshedAt time.Time) SessionSnapshot {
	return SessionSnapshot{
		Authenticated:     authenticated,
		HasRequiredAccess: authenticated && hasRequiredAccess,
		Tier:              tier,
		LastRefreshedAt:   refreshedAt,
	}
}

// ConservativeSnapshot is the fail-closed state installed when status cannot
// be determined: not authenticated, no entitlements, no lifecycle records.
func ConservativeSnapshot(refreshedAt time.Time) SessionSnapshot {
	return SessionSnapshot{
		Authenticated:     false,
		HasRequiredAccess: false,
		Tier:              TierFree,
		LastRefreshedAt:   refreshedAt,
	}
}
