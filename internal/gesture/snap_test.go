package gesture_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/frudas24/deskswipe/internal/gesture"
)

// TestProjectDistance_ContinuousAndMonotonic verifies the curve joins at the threshold and keeps growing.
func TestProjectDistance_ContinuousAndMonotonic(t *testing.T) {
	for _, touchpad := range []bool{false, true} {
		below := gesture.ProjectDistance(gesture.VelocityCurveThreshold-1e-9, touchpad)
		above := gesture.ProjectDistance(gesture.VelocityCurveThreshold+1e-9, touchpad)
		assert.InDelta(t, below, above, 1e-6)

		prev := 0.0
		for v := 0.1; v < 6; v += 0.1 {
			d := gesture.ProjectDistance(v, touchpad)
			assert.Greater(t, d, prev)
			assert.InDelta(t, -d, gesture.ProjectDistance(-v, touchpad), 1e-12)
			prev = d
		}
	}
	assert.Equal(t, 0.0, gesture.ProjectDistance(0, false))
}

// TestProjectDistance_KnownValues checks the linear and parabolic regions.
func TestProjectDistance_KnownValues(t *testing.T) {
	assert.InDelta(t, 0.499, gesture.ProjectDistance(1, false), 1e-6)
	assert.InDelta(t, 1.347, gesture.ProjectDistance(3, true), 1e-3)
}

// TestClosestPoint_TiesGoLow verifies the first minimum wins.
func TestClosestPoint_TiesGoLow(t *testing.T) {
	points := []float64{0, 1, 2}
	assert.Equal(t, 0, gesture.ClosestPoint(points, 0.5))
	assert.Equal(t, 1, gesture.ClosestPoint(points, 1.5))
	assert.Equal(t, 2, gesture.ClosestPoint(points, 9))
	assert.Equal(t, 0, gesture.ClosestPoint(points, -9))
}

// TestNextPreviousPoint covers the neighbour lookups and their misses.
func TestNextPreviousPoint(t *testing.T) {
	points := []float64{0, 1, 2}
	assert.Equal(t, 1, gesture.NextPoint(points, 0.5))
	assert.Equal(t, 1, gesture.NextPoint(points, 1))
	assert.Equal(t, -1, gesture.NextPoint(points, 2.5))
	assert.Equal(t, 0, gesture.PreviousPoint(points, 0.5))
	assert.Equal(t, 1, gesture.PreviousPoint(points, 1))
	assert.Equal(t, -1, gesture.PreviousPoint(points, -0.5))
}

// TestProjectPoint_LeavesStartInDirectionOfTravel verifies a fling moves off the start point.
func TestProjectPoint_LeavesStartInDirectionOfTravel(t *testing.T) {
	points := []float64{0, 1, 2, 3}
	assert.Equal(t, 2, gesture.ProjectPoint(points, 1, 1.2, 1))
	assert.Equal(t, 0, gesture.ProjectPoint(points, 1, 0.8, -1))
	assert.Equal(t, 3, gesture.ProjectPoint(points, 1, 2.6, 1))
	assert.Equal(t, 2, gesture.ProjectPoint(points, 1, 2.4, 1))
	assert.Equal(t, 3, gesture.ProjectPoint(points, 3, 3, 1))
}

// TestBounds covers the overshoot window around the initial point.
func TestBounds(t *testing.T) {
	points := []float64{0, 1, 2, 3, 4}
	cases := []struct {
		name    string
		initial float64
		long    bool
		lo, hi  float64
	}{
		{name: "on point", initial: 2, lo: 1, hi: 3},
		{name: "near point", initial: 2.004, lo: 1, hi: 3},
		{name: "between points", initial: 1.5, lo: 0, hi: 3},
		{name: "first", initial: 0, lo: 0, hi: 1},
		{name: "last", initial: 4, lo: 3, hi: 4},
		{name: "long swipes", initial: 2, long: true, lo: 0, hi: 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := gesture.Bounds(points, tc.initial, tc.long)
			assert.Equal(t, tc.lo, lo)
			assert.Equal(t, tc.hi, hi)
		})
	}
}

// TestWrap maps positions into one period.
func TestWrap(t *testing.T) {
	assert.InDelta(t, 2.4, gesture.Wrap(-0.6, 3), 1e-9)
	assert.InDelta(t, 0.5, gesture.Wrap(3.5, 3), 1e-9)
	assert.Equal(t, 0.0, gesture.Wrap(3, 3))
	assert.Equal(t, 0.0, gesture.Wrap(-3, 3))
	assert.Equal(t, 7.0, gesture.Wrap(7, 0))
}

// TestSettleDuration covers the clamps and the zero-travel case.
func TestSettleDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), gesture.SettleDuration(1, 1, 0.5))
	assert.Equal(t, 100*time.Millisecond, gesture.SettleDuration(0, 1, 100))
	assert.Equal(t, 400*time.Millisecond, gesture.SettleDuration(0, 1, 0.0001))
	assert.InDelta(t, float64(210*time.Millisecond), float64(gesture.SettleDuration(0.3, 1, 0.01)), float64(time.Millisecond))

	// Moving away from the target falls back to the base velocity.
	assert.InDelta(t, float64(150*time.Millisecond), float64(gesture.SettleDuration(0.1, 0, 0.01)), float64(time.Millisecond))

	long := gesture.SettleDuration(0, 3, 0.0001)
	assert.InDelta(t, 400*math.Log2(4), float64(long)/float64(time.Millisecond), 1e-6)
}
