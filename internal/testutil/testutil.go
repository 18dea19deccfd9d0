package testutil

import (
	"time"

	"go.uber.org/zap"

	"github.com/slshults/gpra-web-sub001/internal/domain"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// PaidSnapshot is an authenticated, entitled, paid-tier snapshot
func PaidSnapshot() domain.SessionSnapshot {
	return domain.NewSessionSnapshot(true, true, domain.TierPaid, time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))
}

// FreeSnapshot is an authenticated free-tier snapshot
func FreeSnapshot() domain.SessionSnapshot {
	return domain.NewSessionSnapshot(true, true, domain.TierFree, time.Date(2025, 5, 12, 10, 0, 0, 0, time.UTC))
}

// RestrictedSnapshot is an authenticated snapshot in restricted mode
func RestrictedSnapshot() domain.SessionSnapshot {
	snap := FreeSnapshot()
	snap.RestrictedMode = true
	return snap
}
