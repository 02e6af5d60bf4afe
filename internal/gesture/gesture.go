package gesture

import (
	"context"
	"errors"
	"math"
)

const (
	DefaultSwipeThreshold = 80.0
	DefaultMoveThreshold  = 5.0
	DefaultEdgeZone       = 0.25
)

var ErrGestureAborted = errors.New("gesture: aborted before release")

// Source is the input device that owns a gesture.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

type Action int

const (
	ActionNone Action = iota
	ActionPrevious
	ActionNext
	ActionFlip
)

func (a Action) String() string {
	switch a {
	case ActionPrevious:
		return "previous"
	case ActionNext:
		return "next"
	case ActionFlip:
		return "flip"
	default:
		return "none"
	}
}

type Kind int

const (
	KindTap Kind = iota
	KindSwipe
)

func (k Kind) String() string {
	if k == KindSwipe {
		return "swipe"
	}
	return "tap"
}

// Bounds is the horizontal extent of the card surface.
type Bounds struct {
	Left  float64
	Width float64
}

// Resolution is the outcome of one completed gesture.
type Resolution struct {
	Action Action
	Kind   Kind
	Source Source
	DeltaX float64
}

type Thresholds struct {
	Swipe    float64
	Move     float64
	EdgeZone float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Swipe:    DefaultSwipeThreshold,
		Move:     DefaultMoveThreshold,
		EdgeZone: DefaultEdgeZone,
	}
}

// state is either idle or *dragging.
type state interface {
	isState()
}

type idle struct{}

type dragging struct {
	source  Source
	startX  float64
	lastX   float64
	crossed bool
}

func (idle) isState()      {}
func (*dragging) isState() {}

// Classifier turns pointer events on a single card surface into actions.
// It owns at most one gesture at a time and is not safe for concurrent use.
type Classifier struct {
	thresholds Thresholds
	state      state
}

func New(t Thresholds) *Classifier {
	d := DefaultThresholds()
	if t.Swipe <= 0 {
		t.Swipe = d.Swipe
	}
	if t.Move <= 0 {
		t.Move = d.Move
	}
	if t.EdgeZone <= 0 || t.EdgeZone >= 0.5 {
		t.EdgeZone = d.EdgeZone
	}
	return &Classifier{thresholds: t, state: idle{}}
}

func (c *Classifier) Thresholds() Thresholds {
	return c.thresholds
}

func (c *Classifier) Active() bool {
	_, ok := c.state.(*dragging)
	return ok
}

// Press starts a gesture. It returns false if a gesture is already in
// flight; the earlier gesture keeps ownership.
func (c *Classifier) Press(src Source, x float64) bool {
	if c.Active() {
		return false
	}
	c.state = &dragging{source: src, startX: x, lastX: x}
	return true
}

// PressTouch starts a touch gesture from the first active touch point.
func (c *Classifier) PressTouch(points []float64) bool {
	if len(points) == 0 {
		return false
	}
	return c.Press(SourceTouch, points[0])
}

// Move records a sample. Samples from a source that does not own the
// current gesture are ignored.
func (c *Classifier) Move(src Source, x float64) {
	d, ok := c.state.(*dragging)
	if !ok || d.source != src {
		return
	}
	if !d.crossed && math.Abs(x-d.startX) > c.thresholds.Move {
		d.crossed = true
	}
	d.lastX = x
}

func (c *Classifier) MoveTouch(points []float64) {
	if len(points) == 0 {
		return
	}
	c.Move(SourceTouch, points[0])
}

// Release ends the gesture and classifies it against the card bounds. The
// classifier is idle again afterwards whatever the outcome.
func (c *Classifier) Release(b Bounds) (Resolution, bool) {
	d, ok := c.state.(*dragging)
	if !ok {
		return Resolution{}, false
	}
	c.state = idle{}

	delta := d.lastX - d.startX
	res := Resolution{Source: d.source, DeltaX: delta}

	if d.crossed && math.Abs(delta) > c.thresholds.Swipe {
		res.Kind = KindSwipe
		if delta > 0 {
			res.Action = ActionPrevious
		} else {
			res.Action = ActionNext
		}
		return res, true
	}

	res.Kind = KindTap
	res.Action = c.tapAction(d.lastX-b.Left, b.Width)
	return res, true
}

// Cancel drops the in-flight gesture without producing an action.
func (c *Classifier) Cancel() bool {
	active := c.Active()
	c.state = idle{}
	return active
}

func (c *Classifier) tapAction(x, width float64) Action {
	switch {
	case x < width*c.thresholds.EdgeZone:
		return ActionPrevious
	case x > width*(1-c.thresholds.EdgeZone):
		return ActionNext
	default:
		return ActionFlip
	}
}

// EventType is the phase of a pointer event.
type EventType int

const (
	EventDown EventType = iota
	EventMove
	EventUp
	EventCancel
)

// Event is one pointer or touch sample. Points holds the active touch
// points for touch events; X is used for mouse events.
type Event struct {
	Type   EventType
	Source Source
	X      float64
	Points []float64
}

// Handle feeds one event to the classifier and returns a resolution when the
// event completes a gesture.
func (c *Classifier) Handle(ev Event, b Bounds) (Resolution, bool) {
	switch ev.Type {
	case EventDown:
		if ev.Source == SourceTouch {
			c.PressTouch(ev.Points)
		} else {
			c.Press(ev.Source, ev.X)
		}
	case EventMove:
		if ev.Source == SourceTouch {
			c.MoveTouch(ev.Points)
		} else {
			c.Move(ev.Source, ev.X)
		}
	case EventUp:
		d, ok := c.state.(*dragging)
		if !ok || d.source != ev.Source {
			return Resolution{}, false
		}
		return c.Release(b)
	case EventCancel:
		c.Cancel()
	}
	return Resolution{}, false
}

// Classify consumes events until one gesture completes. The drag state is
// always released on return; a cancel event, a closed stream or a done
// context yield ErrGestureAborted. Events arriving before the first press
// are ignored.
func (c *Classifier) Classify(ctx context.Context, events <-chan Event, b Bounds) (Resolution, error) {
	defer c.Cancel()

	for {
		select {
		case <-ctx.Done():
			return Resolution{}, errors.Join(ErrGestureAborted, ctx.Err())
		case ev, ok := <-events:
			if !ok {
				return Resolution{}, ErrGestureAborted
			}
			if ev.Type == EventCancel && c.Active() {
				return Resolution{}, ErrGestureAborted
			}
			if res, done := c.Handle(ev, b); done {
				return res, nil
			}
		}
	}
}
