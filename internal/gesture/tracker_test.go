package gesture_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/deskswipe/internal/gesture"
	"github.com/frudas24/deskswipe/internal/testutil"
)

// consumer confirms every gesture with fixed parameters and records output.
type consumer struct {
	veto     bool
	distance float64
	points   []float64
	current  float64
	cancel   float64
	err      error
	begins   []gesture.Begin
	updates  []float64
	ends     []gesture.End
}

// attach registers the consumer on tr.
func (c *consumer) attach(tr *gesture.Tracker) {
	tr.OnBegin(func(b gesture.Begin) {
		c.begins = append(c.begins, b)
		if c.veto {
			return
		}
		c.err = tr.Confirm(c.distance, c.points, c.current, c.cancel)
	})
	tr.OnUpdate(func(p float64) { c.updates = append(c.updates, p) })
	tr.OnEnd(func(e gesture.End) { c.ends = append(c.ends, e) })
}

// newTracker returns a tracker with a confirming consumer over points [0,1,2].
func newTracker(prefs gesture.Preferences, current float64) (*gesture.Tracker, *consumer, *testutil.ManualScheduler) {
	sched := testutil.NewManualScheduler(epoch)
	tr := gesture.NewTracker(sched, gesture.Options{Preferences: prefs})
	c := &consumer{distance: 300, points: []float64{0, 1, 2}, current: current, cancel: current}
	c.attach(tr)
	return tr, c, sched
}

// beginDrag opens a confirmed native drag gesture.
func beginDrag(t *testing.T, tr *gesture.Tracker) {
	t.Helper()
	tr.DragBegin(gesture.DragState{Time: epoch, X: 10, Y: 10})
	require.Equal(t, gesture.StateScrolling, tr.State())
}

// TestTracker_UnconfirmedGestureIsIgnored verifies a consumer veto drops the whole gesture.
func TestTracker_UnconfirmedGestureIsIgnored(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 0)
	c.veto = true

	tr.HandleScroll(smooth(sched.Now(), 0, 5))
	tr.HandleScroll(smooth(sched.Now(), 0, 5))
	sched.Advance(time.Second)

	assert.Len(t, c.begins, 1)
	assert.Empty(t, c.updates)
	assert.Empty(t, c.ends)
	assert.Equal(t, gesture.StateIdle, tr.State())
	assert.Equal(t, 0.0, tr.Progress())
}

// TestTracker_WheelGestureSettlesOnNearest verifies a slow wheel gesture snaps back.
func TestTracker_WheelGestureSettlesOnNearest(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 0)

	tr.HandleScroll(smooth(sched.Now(), 0, 3))
	require.NoError(t, c.err)
	require.Len(t, c.updates, 1)
	assert.InDelta(t, 0.1, c.updates[0], 1e-9)

	sched.Advance(gesture.DefaultScrollQuietPeriod)
	require.Len(t, c.ends, 1)
	assert.Equal(t, 0.0, c.ends[0].Target)
	assert.InDelta(t, float64(150*time.Millisecond), float64(c.ends[0].Duration), float64(time.Millisecond))
	assert.Equal(t, gesture.StateIdle, tr.State())
}

// TestTracker_FastWheelGestureAdvances verifies wheel velocity carries to the next page.
func TestTracker_FastWheelGestureAdvances(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 0)

	for i := 0; i < 3; i++ {
		tr.HandleScroll(smooth(sched.Now(), 0, 3))
		sched.Advance(10 * time.Millisecond)
	}
	assert.InDelta(t, 0.3, tr.Progress(), 1e-9)

	sched.Advance(gesture.DefaultScrollQuietPeriod)
	require.Len(t, c.ends, 1)
	assert.Equal(t, 1.0, c.ends[0].Target)
	assert.InDelta(t, float64(210*time.Millisecond), float64(c.ends[0].Duration), float64(time.Millisecond))
}

// TestTracker_ResolveEndExamples checks the documented landing examples.
func TestTracker_ResolveEndExamples(t *testing.T) {
	tr, _, _ := newTracker(gesture.DefaultPreferences(), 0.4)
	beginDrag(t, tr)

	assert.Equal(t, 0.0, tr.ResolveEnd(0.1, false))
	assert.Equal(t, 2.0, tr.ResolveEnd(3.0, true))
	assert.Equal(t, 0.0, tr.ResolveEnd(-3.0, true))
}

// TestTracker_NearestTieGoesToLowerPoint verifies the midpoint tie-break.
func TestTracker_NearestTieGoesToLowerPoint(t *testing.T) {
	tr, _, _ := newTracker(gesture.DefaultPreferences(), 0.5)
	beginDrag(t, tr)

	assert.Equal(t, 0.0, tr.ResolveEnd(0, false))
	assert.Equal(t, 0.0, tr.ResolveEnd(0.29, false))
	assert.Equal(t, 0.0, tr.ResolveEnd(-0.59, true))
}

// TestTracker_CancelledResolvesToCancelProgress verifies velocity is ignored after cancel.
func TestTracker_CancelledResolvesToCancelProgress(t *testing.T) {
	tr, c, _ := newTracker(gesture.DefaultPreferences(), 0.4)
	c.cancel = 1
	beginDrag(t, tr)
	tr.Cancel()

	for _, v := range []float64{0, 0.1, -0.1, 3, -3, 1e9, -1e9, math.MaxFloat64} {
		assert.Equal(t, 1.0, tr.ResolveEnd(v, false), "velocity %v", v)
		assert.Equal(t, 1.0, tr.ResolveEnd(v, true), "velocity %v", v)
	}

	tr.DragEnd(gesture.DragState{Time: epoch, VX: -50})
	require.Len(t, c.ends, 1)
	assert.Equal(t, 1.0, c.ends[0].Target)
}

// TestTracker_DragTransforms verifies the direction and inversion pipeline.
func TestTracker_DragTransforms(t *testing.T) {
	cases := []struct {
		name  string
		prefs gesture.Preferences
		want  float64
	}{
		{name: "plain", prefs: gesture.Preferences{}, want: 1.1},
		{name: "rtl", prefs: gesture.Preferences{TextDirection: gesture.RightToLeft}, want: 0.9},
		{name: "rtl vertical", prefs: gesture.Preferences{TextDirection: gesture.RightToLeft, Orientation: gesture.Vertical}, want: 1.1},
		{name: "inverted", prefs: gesture.Preferences{Inverted: true}, want: 0.9},
		{name: "natural", prefs: gesture.Preferences{NaturalScrolling: true}, want: 0.9},
		{name: "rtl inverted natural", prefs: gesture.Preferences{TextDirection: gesture.RightToLeft, Inverted: true, NaturalScrolling: true}, want: 0.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr, c, _ := newTracker(tc.prefs, 1)
			beginDrag(t, tr)
			tr.DragUpdate(gesture.DragState{Time: epoch, DX: -30, DY: -30})
			require.Len(t, c.updates, 1)
			assert.InDelta(t, tc.want, c.updates[0], 1e-9)
		})
	}
}

// TestTracker_DragUpdatesUseIncrementalDelta verifies accumulated drag offsets become deltas.
func TestTracker_DragUpdatesUseIncrementalDelta(t *testing.T) {
	tr, c, _ := newTracker(gesture.DefaultPreferences(), 1)
	beginDrag(t, tr)

	tr.DragUpdate(gesture.DragState{Time: epoch, DX: -30})
	tr.DragUpdate(gesture.DragState{Time: epoch.Add(10 * time.Millisecond), DX: -60})
	tr.DragUpdate(gesture.DragState{Time: epoch.Add(20 * time.Millisecond), DX: -45})

	require.Len(t, c.updates, 3)
	assert.InDelta(t, 1.1, c.updates[0], 1e-9)
	assert.InDelta(t, 1.2, c.updates[1], 1e-9)
	assert.InDelta(t, 1.15, c.updates[2], 1e-9)
}

// TestTracker_WheelNaturalScrollingFlag verifies the wheel channel only inverts when asked.
func TestTracker_WheelNaturalScrollingFlag(t *testing.T) {
	tr, c, sched := newTracker(gesture.Preferences{NaturalScrolling: true}, 1)
	tr.HandleScroll(smooth(sched.Now(), 0, 3))
	require.Len(t, c.updates, 1)
	assert.InDelta(t, 1.1, c.updates[0], 1e-9)

	tr2, c2, sched2 := newTracker(gesture.Preferences{NaturalScrolling: true, WheelNaturalScrolling: true}, 1)
	tr2.HandleScroll(smooth(sched2.Now(), 0, 3))
	require.Len(t, c2.updates, 1)
	assert.InDelta(t, 0.9, c2.updates[0], 1e-9)
}

// TestTracker_ClampsToBounds verifies progress stays within one point of overshoot.
func TestTracker_ClampsToBounds(t *testing.T) {
	tr, c, _ := newTracker(gesture.DefaultPreferences(), 0)
	c.points = []float64{0, 1, 2, 3}
	beginDrag(t, tr)

	tr.DragUpdate(gesture.DragState{Time: epoch, DX: -3000})
	assert.Equal(t, 1.0, tr.Progress())
	tr.DragUpdate(gesture.DragState{Time: epoch, DX: 3000})
	assert.Equal(t, 0.0, tr.Progress())
	for _, p := range c.updates {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

// TestTracker_LongSwipesUseFullRange verifies the long swipe bound policy.
func TestTracker_LongSwipesUseFullRange(t *testing.T) {
	tr, c, _ := newTracker(gesture.Preferences{AllowLongSwipes: true}, 0)
	c.points = []float64{0, 1, 2, 3}
	beginDrag(t, tr)

	tr.DragUpdate(gesture.DragState{Time: epoch, DX: -3000})
	assert.Equal(t, 3.0, tr.Progress())
}

// loopingPrefs returns preferences that wrap progress.
func loopingPrefs() gesture.Preferences {
	return gesture.Preferences{SwitcherStyle: gesture.StyleCarousel, LoopingMethod: gesture.LoopContinuous}
}

// TestTracker_LoopingWrapsProgress verifies wrapped progress stays in [0, n).
func TestTracker_LoopingWrapsProgress(t *testing.T) {
	tr, c, _ := newTracker(loopingPrefs(), 0)
	beginDrag(t, tr)

	tr.DragUpdate(gesture.DragState{Time: epoch, DX: 180})
	assert.InDelta(t, 2.4, tr.Progress(), 1e-9)
	for dx := 180.0; dx <= 3000; dx += 170 {
		tr.DragUpdate(gesture.DragState{Time: epoch, DX: dx})
	}
	for _, p := range c.updates {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 3.0)
	}
}

// TestTracker_LoopingSnapsAcrossSeam verifies projection is continuous at the 0/N boundary.
func TestTracker_LoopingSnapsAcrossSeam(t *testing.T) {
	tr, c, _ := newTracker(loopingPrefs(), 0)
	beginDrag(t, tr)
	tr.DragUpdate(gesture.DragState{Time: epoch, DX: 180})
	tr.DragEnd(gesture.DragState{Time: epoch})
	require.Len(t, c.ends, 1)
	assert.Equal(t, 2.0, c.ends[0].Target)

	tr2, c2, _ := newTracker(loopingPrefs(), 2)
	beginDrag(t, tr2)
	tr2.DragUpdate(gesture.DragState{Time: epoch, DX: -60})
	tr2.DragEnd(gesture.DragState{Time: epoch, VX: -1})
	require.Len(t, c2.ends, 1)
	assert.Equal(t, 0.0, c2.ends[0].Target)
	assert.Greater(t, c2.ends[0].Duration, time.Duration(0))
}

// TestTracker_LoopingSlowReleaseUsesNearestPoint verifies a slow release in
// looping mode picks the nearest snap point to the reported progress.
func TestTracker_LoopingSlowReleaseUsesNearestPoint(t *testing.T) {
	tr, c, _ := newTracker(loopingPrefs(), 0)
	beginDrag(t, tr)
	tr.DragUpdate(gesture.DragState{Time: epoch, DX: 60})
	require.InDelta(t, 2.8, tr.Progress(), 1e-9)

	assert.Equal(t, 2.0, tr.ResolveEnd(0.1, false))
	tr.DragEnd(gesture.DragState{Time: epoch})
	require.Len(t, c.ends, 1)
	assert.Equal(t, 2.0, c.ends[0].Target)
	assert.Greater(t, c.ends[0].Duration, time.Duration(0))
}

// TestTracker_DisableInterruptsGesture verifies disabling reports one instant end.
func TestTracker_DisableInterruptsGesture(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 1)
	c.cancel = 2

	tr.HandleScroll(smooth(sched.Now(), 0, 3))
	require.Equal(t, gesture.StateScrolling, tr.State())

	tr.SetEnabled(false)
	require.Len(t, c.ends, 1)
	assert.Equal(t, gesture.End{Duration: 0, Target: 2}, c.ends[0])
	assert.False(t, tr.ScrollAdapter().Active())
	assert.Equal(t, 0, sched.Pending())

	assert.Equal(t, gesture.Propagate, tr.HandleScroll(smooth(sched.Now(), 0, 3)))
	sched.Advance(time.Second)
	assert.Len(t, c.ends, 1)
	assert.Len(t, c.begins, 1)
}

// TestTracker_ConfirmValidation verifies confirm rejects bad input.
func TestTracker_ConfirmValidation(t *testing.T) {
	tr := gesture.NewTracker(nil, gesture.Options{})
	assert.ErrorIs(t, tr.Confirm(300, []float64{0, 1}, 0, 0), gesture.ErrNotPreparing)

	var errs []error
	inputs := []struct {
		distance float64
		points   []float64
	}{
		{300, nil},
		{300, []float64{0, 2, 1}},
		{300, []float64{0, 0, 1}},
		{0, []float64{0, 1}},
		{-1, []float64{0, 1}},
	}
	for _, in := range inputs {
		unsubscribe := tr.OnBegin(func(gesture.Begin) {
			errs = append(errs, tr.Confirm(in.distance, in.points, 0, 0))
		})
		tr.DragBegin(gesture.DragState{Time: epoch})
		unsubscribe()
		assert.Equal(t, gesture.StateIdle, tr.State())
	}
	require.Len(t, errs, 5)
	assert.ErrorIs(t, errs[0], gesture.ErrInvalidSnapPoints)
	assert.ErrorIs(t, errs[1], gesture.ErrInvalidSnapPoints)
	assert.ErrorIs(t, errs[2], gesture.ErrInvalidSnapPoints)
	assert.ErrorIs(t, errs[3], gesture.ErrInvalidDistance)
	assert.ErrorIs(t, errs[4], gesture.ErrInvalidDistance)
}

// TestTracker_OneChannelAtATime verifies a second channel cannot join an open gesture.
func TestTracker_OneChannelAtATime(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 1)
	beginDrag(t, tr)

	tr.HandleScroll(smooth(sched.Now(), 0, 30))
	assert.Len(t, c.begins, 1)
	assert.Empty(t, c.updates)

	tr.DragEnd(gesture.DragState{Time: epoch})
	sched.Advance(time.Second)
	assert.Len(t, c.ends, 1)
}

// TestTracker_DestroyIsIdempotent verifies teardown drops observers and the wheel timer.
func TestTracker_DestroyIsIdempotent(t *testing.T) {
	tr, c, sched := newTracker(gesture.DefaultPreferences(), 0)
	src := gesture.NewDispatcher()
	tr.Attach(src)

	src.Dispatch(smooth(sched.Now(), 0, 3))
	require.Len(t, c.updates, 1)

	tr.Destroy()
	tr.Destroy()
	assert.Equal(t, 0, src.Len())
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Second)
	tr.DragBegin(gesture.DragState{Time: epoch})
	assert.Len(t, c.begins, 1)
	assert.Empty(t, c.ends)
}

// TestTracker_UnsubscribeStopsNotifications verifies observer removal.
func TestTracker_UnsubscribeStopsNotifications(t *testing.T) {
	tr, c, _ := newTracker(gesture.DefaultPreferences(), 1)
	var extra int
	unsubscribe := tr.OnUpdate(func(float64) { extra++ })

	beginDrag(t, tr)
	tr.DragUpdate(gesture.DragState{Time: epoch, DX: -30})
	unsubscribe()
	tr.DragUpdate(gesture.DragState{Time: epoch, DX: -60})

	assert.Equal(t, 1, extra)
	assert.Len(t, c.updates, 2)
}

// TestPreferences_Rewinds verifies rewind only applies when not looping.
func TestPreferences_Rewinds(t *testing.T) {
	p := gesture.DefaultPreferences()
	assert.False(t, p.Rewinds())
	p.LoopingMethod = gesture.LoopRewind
	assert.True(t, p.Rewinds())
	p.SwitcherStyle = gesture.StyleCarousel
	assert.True(t, p.Rewinds())
	p.LoopingMethod = gesture.LoopContinuous
	assert.False(t, p.Rewinds())
	assert.True(t, p.Looping())
}
