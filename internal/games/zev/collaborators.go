package zev

// SoundEvent names a cue for the SoundPlayer.
type SoundEvent string

const (
	SoundMove       SoundEvent = "move"
	SoundRotate     SoundEvent = "rotate"
	SoundDrop       SoundEvent = "drop"
	SoundClear      SoundEvent = "clear"
	SoundGameOver   SoundEvent = "gameOver"
	SoundTwist      SoundEvent = "twist"
	SoundLevelUp    SoundEvent = "levelUp"
	SoundMusicStart SoundEvent = "backgroundMusicStart"
	SoundMusicStop  SoundEvent = "backgroundMusicStop"
)

// SoundEvents lists every cue a session can trigger.
var SoundEvents = []SoundEvent{
	SoundMove, SoundRotate, SoundDrop, SoundClear, SoundGameOver,
	SoundTwist, SoundLevelUp, SoundMusicStart, SoundMusicStop,
}

// SoundPlayer plays cues. Trigger must not block.
type SoundPlayer interface {
	Trigger(ev SoundEvent)
}

// Frame is what a Renderer receives once per gravity tick.
type Frame struct {
	Grid    [][]Cell
	Current Piece
	Next    Piece
	Twist   TwistKind
	Score   int
	Level   int
}

// Renderer consumes frames. It must not hold on to the session.
type Renderer interface {
	RenderFrame(f Frame)
}

// Report is the state pushed to the UI after every change.
type Report struct {
	Score    int
	Level    int
	Lines    int
	Combo    int
	Paused   bool
	GameOver bool
	Message  string
}

// UI receives state reports.
type UI interface {
	ReportState(r Report)
}

// EventType classifies a session Event.
type EventType int

const (
	EventTwistStarted EventType = iota
	EventTwistEnded
	EventPerturbed
	EventLinesCleared
	EventLevelUp
	EventGameOver
	EventRestarted
)

func (t EventType) String() string {
	switch t {
	case EventTwistStarted:
		return "twist_started"
	case EventTwistEnded:
		return "twist_ended"
	case EventPerturbed:
		return "perturbed"
	case EventLinesCleared:
		return "lines_cleared"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	case EventRestarted:
		return "restarted"
	default:
		return "unknown"
	}
}

// Event describes a notable change, for logging and statistics.
type Event struct {
	Type  EventType
	Twist Twist
	Lines int // Lines removed by this lock, for EventLinesCleared
	Score int
	Level int
	Clock int64 // Session clock in milliseconds
}

// Observer receives session events.
type Observer interface {
	Observe(ev Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(ev).
func (f ObserverFunc) Observe(ev Event) { f(ev) }

// Collaborators bundles the presentation adapters of a session.
// Nil fields fall back to no-ops.
type Collaborators struct {
	Sound    SoundPlayer
	Renderer Renderer
	UI       UI
	Observer Observer
}

type nopSound struct{}

func (nopSound) Trigger(SoundEvent) {}

type nopRenderer struct{}

func (nopRenderer) RenderFrame(Frame) {}

type nopUI struct{}

func (nopUI) ReportState(Report) {}

type nopObserver struct{}

func (nopObserver) Observe(Event) {}

func (c Collaborators) withDefaults() Collaborators {
	if c.Sound == nil {
		c.Sound = nopSound{}
	}
	if c.Renderer == nil {
		c.Renderer = nopRenderer{}
	}
	if c.UI == nil {
		c.UI = nopUI{}
	}
	if c.Observer == nil {
		c.Observer = nopObserver{}
	}
	return c
}
