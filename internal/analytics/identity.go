package analytics

import (
	"github.com/google/uuid"

	"github.com/slshults/gpra-web-sub001/internal/browser"
)

const deviceIDKey = "gpra_device_id"

// Identity manages the anonymous device ID analytics events are keyed by.
// It lives in session-scoped storage so a fresh browser session gets a fresh
// identity, and logout rotates it explicitly.
type Identity struct {
	env browser.Env
}

// NewIdentity creates an identity manager over the given environment
func NewIdentity(env browser.Env) *Identity {
	return &Identity{env: env}
}

// DeviceID returns the current device ID, minting and storing one on first use
func (i *Identity) DeviceID() string {
	if id, ok := i.env.SessionGet(deviceIDKey); ok && id != "" {
		return id
	}
	id := uuid.NewString()
	i.env.SessionSet(deviceIDKey, id)
	return id
}

// Rotate discards the stored device ID. The next DeviceID call mints a new one.
func (i *Identity) Rotate() {
	i.env.SessionRemove(deviceIDKey)
}
