package device_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapp/internal/apperror"
	"authapp/internal/device"
)

func TestResolve_Deterministic(t *testing.T) {
	// 同じ入力は必ず同じ指紋（再ログインで行が増えない）
	d1, err := device.Resolve("Mozilla/5.0", "203.0.113.7")
	require.NoError(t, err)

	d2, err := device.Resolve("Mozilla/5.0", "203.0.113.7")
	require.NoError(t, err)

	assert.Equal(t, d1.DeviceID, d2.DeviceID)
	assert.Equal(t, "203.0.113.7", d1.IPAddress)
	assert.Equal(t, "Mozilla/5.0", d1.UserAgent)
}

func TestResolve_DifferentInputsDifferentFingerprints(t *testing.T) {
	d1, err := device.Resolve("Mozilla/5.0", "203.0.113.7")
	require.NoError(t, err)

	d2, err := device.Resolve("Mozilla/5.0", "203.0.113.8")
	require.NoError(t, err)

	d3, err := device.Resolve("curl/8.0", "203.0.113.7")
	require.NoError(t, err)

	assert.NotEqual(t, d1.DeviceID, d2.DeviceID)
	assert.NotEqual(t, d1.DeviceID, d3.DeviceID)
}

func TestResolve_MissingContext(t *testing.T) {
	_, err := device.Resolve("", "203.0.113.7")
	assert.ErrorIs(t, err, apperror.ErrMissingDeviceContext)

	_, err = device.Resolve("Mozilla/5.0", "")
	assert.ErrorIs(t, err, apperror.ErrMissingDeviceContext)
}
