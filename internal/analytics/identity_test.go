package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slshults/gpra-web-sub001/internal/browser"
)

func TestIdentity_DeviceIDStable(t *testing.T) {
	env := browser.NewMemory()
	identity := NewIdentity(env)

	first := identity.DeviceID()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, identity.DeviceID(), "device ID must be stable within a session")

	stored, ok := env.SessionGet("gpra_device_id")
	assert.True(t, ok)
	assert.Equal(t, first, stored)
}

func TestIdentity_Rotate(t *testing.T) {
	env := browser.NewMemory()
	identity := NewIdentity(env)

	first := identity.DeviceID()
	identity.Rotate()

	_, ok := env.SessionGet("gpra_device_id")
	assert.False(t, ok, "rotate must clear the stored ID")

	second := identity.DeviceID()
	assert.NotEqual(t, first, second)
}
