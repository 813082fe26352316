package gesture_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// TestHistory_VelocitySkipsAnchorSample verifies the first sample only sets the period.
func TestHistory_VelocitySkipsAnchorSample(t *testing.T) {
	h := gesture.NewHistory()
	assert.Equal(t, 0.0, h.Velocity())

	h.Append(epoch, 100)
	assert.Equal(t, 0.0, h.Velocity())

	h.Append(epoch.Add(10*time.Millisecond), 10)
	h.Append(epoch.Add(20*time.Millisecond), 30)
	assert.InDelta(t, 2.0, h.Velocity(), 1e-9)
}

// TestHistory_TrimDropsStaleSamples verifies the retention window.
func TestHistory_TrimDropsStaleSamples(t *testing.T) {
	h := gesture.NewHistory()
	h.Append(epoch, 5)
	h.Append(epoch.Add(100*time.Millisecond), 5)
	h.Append(epoch.Add(200*time.Millisecond), 5)
	assert.Equal(t, 2, h.Len())

	h.Trim(epoch.Add(250 * time.Millisecond))
	assert.Equal(t, 2, h.Len())
	h.Trim(epoch.Add(251 * time.Millisecond))
	assert.Equal(t, 1, h.Len())
	h.Trim(epoch.Add(time.Second))
	assert.Equal(t, 0, h.Len())
}

// TestHistory_SameTimestampHasNoVelocity verifies a zero period is not divided by.
func TestHistory_SameTimestampHasNoVelocity(t *testing.T) {
	h := gesture.NewHistory()
	h.Append(epoch, 1)
	h.Append(epoch, 50)
	assert.Equal(t, 0.0, h.Velocity())

	h.Reset()
	assert.Equal(t, 0, h.Len())
}
