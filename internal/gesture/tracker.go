package gesture

import (
	"errors"
	"log/slog"
	"math"
	"time"
)

var (
	// ErrNotPreparing is returned by Confirm outside a begin notification.
	ErrNotPreparing = errors.New("gesture: no gesture awaiting confirmation")
	// ErrInvalidSnapPoints is returned for empty or unsorted snap points.
	ErrInvalidSnapPoints = errors.New("gesture: snap points must be non-empty and strictly ascending")
	// ErrInvalidDistance is returned for a non-positive distance.
	ErrInvalidDistance = errors.New("gesture: distance must be positive")
)

// State is the tracker lifecycle state.
type State int

const (
	// StateIdle has no gesture in progress.
	StateIdle State = iota
	// StatePreparing is the begin notification window, awaiting Confirm.
	StatePreparing
	// StateScrolling applies updates to progress.
	StateScrolling
)

// String returns a short state name.
func (s State) String() string {
	switch s {
	case StatePreparing:
		return "preparing"
	case StateScrolling:
		return "scrolling"
	default:
		return "idle"
	}
}

// Begin is sent to consumers when a gesture starts. A consumer accepts the
// gesture by calling Tracker.Confirm from its handler.
type Begin struct {
	Channel Channel
	Time    time.Time
	X       float64
	Y       float64
}

// End is sent once per confirmed gesture with the landing point.
type End struct {
	Duration time.Duration
	Target   float64
}

// DragState is what a pan recognizer reports: the press point, the
// accumulated movement since press and, on release, the velocity in px/ms.
type DragState struct {
	Time time.Time
	X    float64
	Y    float64
	DX   float64
	DY   float64
	VX   float64
	VY   float64
}

// Tracker owns navigation progress for one interactive surface. It accepts
// the wheel channel through its ScrollAdapter and the drag channel through
// DragBegin/DragUpdate/DragEnd. Not safe for concurrent use.
type Tracker struct {
	scroll *ScrollAdapter
	logger *slog.Logger
	prefs  Preferences

	enabled   bool
	destroyed bool
	state     State
	channel   Channel

	distance       float64
	snapPoints     []float64
	progress       float64
	initial        float64
	cancelled      bool
	cancelProgress float64

	history  *History
	dragLast float64

	beginHandlers  []*func(Begin)
	updateHandlers []*func(float64)
	endHandlers    []*func(End)
}

// Options configures a Tracker.
type Options struct {
	Preferences Preferences
	Scroll      ScrollOptions
	Logger      *slog.Logger
}

// NewTracker returns an enabled tracker whose wheel timers run on sched.
func NewTracker(sched Scheduler, opts Options) *Tracker {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	t := &Tracker{
		logger:  logger,
		prefs:   opts.Preferences,
		enabled: true,
		history: NewHistory(),
	}
	if t.prefs.SwitcherStyle == "" {
		t.prefs.SwitcherStyle = StyleDefault
	}
	if t.prefs.LoopingMethod == "" {
		t.prefs.LoopingMethod = LoopNone
	}
	if sched != nil {
		t.scroll = NewScrollAdapter(sched, t, opts.Scroll)
		t.scroll.SetLogger(logger)
	}
	return t
}

// ScrollAdapter returns the wheel channel adapter, or nil when the tracker
// was built without a scheduler.
func (t *Tracker) ScrollAdapter() *ScrollAdapter {
	return t.scroll
}

// Attach subscribes the wheel channel to src.
func (t *Tracker) Attach(src EventSource) {
	if t.scroll != nil {
		t.scroll.Attach(src)
	}
}

// HandleScroll feeds ev to the wheel channel directly.
func (t *Tracker) HandleScroll(ev ScrollEvent) Propagation {
	if t.scroll == nil {
		return Propagate
	}
	return t.scroll.HandleEvent(ev)
}

// OnBegin registers fn for begin notifications.
func (t *Tracker) OnBegin(fn func(Begin)) func() {
	entry := &fn
	t.beginHandlers = append(t.beginHandlers, entry)
	return func() { t.beginHandlers = remove(t.beginHandlers, entry) }
}

// OnUpdate registers fn for progress updates.
func (t *Tracker) OnUpdate(fn func(float64)) func() {
	entry := &fn
	t.updateHandlers = append(t.updateHandlers, entry)
	return func() { t.updateHandlers = remove(t.updateHandlers, entry) }
}

// OnEnd registers fn for end notifications.
func (t *Tracker) OnEnd(fn func(End)) func() {
	entry := &fn
	t.endHandlers = append(t.endHandlers, entry)
	return func() { t.endHandlers = remove(t.endHandlers, entry) }
}

// SetPreferences replaces the user preferences. They take effect on the next
// update.
func (t *Tracker) SetPreferences(p Preferences) {
	t.prefs = p
}

// Preferences returns the current preferences.
func (t *Tracker) Preferences() Preferences {
	return t.prefs
}

// SetEnabled toggles the tracker and its wheel channel. Disabling during a
// gesture interrupts it and reports an instant end at the cancel progress.
func (t *Tracker) SetEnabled(enabled bool) {
	if t.enabled == enabled {
		return
	}
	t.enabled = enabled
	if !enabled && t.state == StateScrolling {
		t.interrupt()
	}
	if t.state == StatePreparing && !enabled {
		t.state = StateIdle
	}
	if t.scroll != nil {
		t.scroll.SetEnabled(enabled)
	}
}

// Enabled reports whether the tracker accepts gestures.
func (t *Tracker) Enabled() bool {
	return t.enabled
}

// State returns the lifecycle state.
func (t *Tracker) State() State {
	return t.state
}

// Progress returns the current progress.
func (t *Tracker) Progress() float64 {
	if t.prefs.Looping() {
		return Wrap(t.progress, len(t.snapPoints))
	}
	return t.progress
}

// Cancel marks the current gesture so that it lands on the cancel progress.
func (t *Tracker) Cancel() {
	if t.state == StateScrolling {
		t.cancelled = true
	}
}

// Confirm accepts the gesture being begun. It must be called from a begin
// handler. snapPoints are copied.
func (t *Tracker) Confirm(distance float64, snapPoints []float64, currentProgress, cancelProgress float64) error {
	if t.state != StatePreparing {
		return ErrNotPreparing
	}
	if !(distance > 0) || math.IsInf(distance, 1) {
		return ErrInvalidDistance
	}
	if err := validateSnapPoints(snapPoints); err != nil {
		return err
	}

	t.distance = distance
	t.snapPoints = append(t.snapPoints[:0], snapPoints...)
	t.progress = currentProgress
	t.initial = currentProgress
	t.cancelled = false
	t.cancelProgress = cancelProgress
	t.history.Reset()
	t.state = StateScrolling
	t.logger.Debug("tracker: confirmed", "channel", t.channel, "distance", distance, "points", len(snapPoints), "progress", currentProgress)
	return nil
}

// GestureBegin starts a gesture on ch and asks consumers to confirm it.
func (t *Tracker) GestureBegin(ch Channel, at time.Time, x, y float64) {
	if t.destroyed || !t.enabled || t.state != StateIdle {
		return
	}
	t.state = StatePreparing
	t.channel = ch
	t.dragLast = 0

	begin := Begin{Channel: ch, Time: at, X: x, Y: y}
	for _, h := range snapshot(t.beginHandlers) {
		(*h)(begin)
	}
	if t.state == StatePreparing {
		t.state = StateIdle
		t.logger.Debug("tracker: gesture not confirmed", "channel", ch)
	}
}

// GestureUpdate applies a pixel delta from ch.
func (t *Tracker) GestureUpdate(ch Channel, at time.Time, delta, distance float64) {
	if t.state != StateScrolling || ch != t.channel {
		return
	}
	if !(distance > 0) {
		distance = t.distance
	}

	delta = t.transform(ch, delta)
	t.history.Append(at, delta)
	t.progress = t.constrain(t.progress + delta/distance)

	progress := t.Progress()
	for _, h := range snapshot(t.updateHandlers) {
		(*h)(progress)
	}
}

// GestureEnd finishes a gesture from ch using the recorded delta history
// for the release velocity.
func (t *Tracker) GestureEnd(ch Channel, at time.Time, distance float64) {
	if t.state != StateScrolling || ch != t.channel {
		return
	}
	if !(distance > 0) {
		distance = t.distance
	}
	t.history.Trim(at)
	t.finish(t.history.Velocity(), distance, ch == Wheel)
}

// DragBegin starts a native drag gesture at the press point.
func (t *Tracker) DragBegin(s DragState) {
	t.GestureBegin(NativeDrag, s.Time, s.X, s.Y)
}

// DragUpdate applies the movement since the previous drag update. Moving
// towards the start of the axis advances progress.
func (t *Tracker) DragUpdate(s DragState) {
	if t.state != StateScrolling || t.channel != NativeDrag {
		return
	}
	pos := t.axis(s.DX, s.DY)
	delta := t.dragLast - pos
	t.dragLast = pos
	t.GestureUpdate(NativeDrag, s.Time, delta, t.distance)
}

// DragEnd finishes a native drag with the release velocity it reports.
func (t *Tracker) DragEnd(s DragState) {
	if t.state != StateScrolling || t.channel != NativeDrag {
		return
	}
	velocity := t.transform(NativeDrag, -t.axis(s.VX, s.VY))
	t.finish(velocity, t.distance, false)
}

// ResolveEnd returns the snap point a release at velocity (px/ms) lands on.
func (t *Tracker) ResolveEnd(velocity float64, touchpad bool) float64 {
	target, _ := t.resolve(velocity, touchpad)
	return target
}

// resolve returns the landing point and, in looping mode, the same point
// unwrapped next to the current progress.
func (t *Tracker) resolve(velocity float64, touchpad bool) (float64, float64) {
	looping := t.prefs.Looping()
	if t.cancelled {
		travel := t.cancelProgress
		if looping && len(t.snapPoints) > 0 {
			span := float64(len(t.snapPoints))
			travel += span * math.Round((t.progress-travel)/span)
		}
		return t.cancelProgress, travel
	}
	if len(t.snapPoints) == 0 {
		return t.progress, t.progress
	}

	if math.Abs(velocity) < velocityThreshold(touchpad) {
		if looping {
			span := float64(len(t.snapPoints))
			target := t.snapPoints[ClosestPoint(t.snapPoints, t.Progress())]
			travel := target + span*math.Round((t.progress-target)/span)
			return target, travel
		}
		target := t.snapPoints[ClosestPoint(t.snapPoints, t.progress)]
		return target, target
	}

	pos := t.constrain(t.progress + ProjectDistance(velocity, touchpad))
	if looping {
		grid := lattice(t.snapPoints, math.Min(t.initial, pos), math.Max(t.initial, pos))
		travel := grid[ProjectPoint(grid, t.initial, pos, velocity)]
		return Wrap(travel, len(t.snapPoints)), travel
	}
	target := t.snapPoints[ProjectPoint(t.snapPoints, t.initial, pos, velocity)]
	return target, target
}

// finish resolves the landing point, resets and notifies consumers.
func (t *Tracker) finish(velocity, distance float64, touchpad bool) {
	target, travel := t.resolve(velocity, touchpad)
	duration := SettleDuration(t.progress, travel, velocity/distance)
	t.logger.Debug("tracker: end", "channel", t.channel, "velocity", velocity, "target", target, "duration", duration, "cancelled", t.cancelled)
	t.reset()
	t.emitEnd(End{Duration: duration, Target: target})
}

// interrupt aborts a scrolling gesture with an instant end.
func (t *Tracker) interrupt() {
	target := t.cancelProgress
	t.logger.Debug("tracker: interrupted", "channel", t.channel, "target", target)
	t.reset()
	t.emitEnd(End{Duration: 0, Target: target})
}

// reset returns the tracker to idle.
func (t *Tracker) reset() {
	t.state = StateIdle
	t.cancelled = false
	t.history.Reset()
}

// emitEnd notifies end handlers.
func (t *Tracker) emitEnd(end End) {
	for _, h := range snapshot(t.endHandlers) {
		(*h)(end)
	}
}

// transform applies the direction and inversion preferences to a delta.
func (t *Tracker) transform(ch Channel, delta float64) float64 {
	p := t.prefs
	if p.Orientation == Horizontal && p.TextDirection == RightToLeft {
		delta = -delta
	}
	if p.Inverted {
		delta = -delta
	}
	if p.NaturalScrolling && (ch == NativeDrag || p.WheelNaturalScrolling) {
		delta = -delta
	}
	return delta
}

// constrain keeps pos inside the travel range. In looping mode progress is
// kept unwrapped and only wrapped when reported.
func (t *Tracker) constrain(pos float64) float64 {
	if t.prefs.Looping() {
		return pos
	}
	lo, hi := Bounds(t.snapPoints, t.initial, t.prefs.AllowLongSwipes)
	return math.Min(math.Max(pos, lo), hi)
}

// axis selects the component along the tracker orientation.
func (t *Tracker) axis(x, y float64) float64 {
	if t.prefs.Orientation == Vertical {
		return y
	}
	return x
}

// Destroy releases the wheel adapter and drops all observers. Safe to call
// more than once.
func (t *Tracker) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.scroll != nil {
		t.scroll.Destroy()
	}
	t.state = StateIdle
	t.beginHandlers = nil
	t.updateHandlers = nil
	t.endHandlers = nil
}

// validateSnapPoints checks the confirm invariant.
func validateSnapPoints(points []float64) error {
	if len(points) == 0 {
		return ErrInvalidSnapPoints
	}
	for i, p := range points {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return ErrInvalidSnapPoints
		}
		if i > 0 && p <= points[i-1] {
			return ErrInvalidSnapPoints
		}
	}
	return nil
}

// snapshot copies a handler list so handlers may unsubscribe while running.
func snapshot[T any](handlers []*T) []*T {
	return append([]*T(nil), handlers...)
}

// remove drops entry from handlers.
func remove[T any](handlers []*T, entry *T) []*T {
	for i, h := range handlers {
		if h == entry {
			return append(handlers[:i:i], handlers[i+1:]...)
		}
	}
	return handlers
}
