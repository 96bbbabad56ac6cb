// Package zev implements the game of Zev: a falling-block puzzle whose rules
// are bent for a few seconds at a time by random twists.
//
// A Session owns one game. It has no I/O and no timers of its own: the host
// feeds it player commands and advances its virtual clock, and the session
// reports back through the SoundPlayer, Renderer, UI and Observer
// collaborators.
package zev

import (
	"math/rand"
	"time"

	"github.com/joelgranik/game-of-zev/internal/config"
)

// State is the lifecycle state of a session.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Command is a player intent.
type Command int

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdSoftDrop
	CmdRotate
	CmdHardDrop
	CmdPause
	CmdRestart
)

func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "move_left"
	case CmdMoveRight:
		return "move_right"
	case CmdSoftDrop:
		return "soft_drop"
	case CmdRotate:
		return "rotate"
	case CmdHardDrop:
		return "hard_drop"
	case CmdPause:
		return "pause"
	case CmdRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// minDropInterval keeps the clock loop finite whatever the speed factor.
const minDropInterval = time.Millisecond

// Session is one game of Zev. It is not safe for concurrent use; the host
// serializes Apply and Advance.
type Session struct {
	cfg    config.ZevConfig
	rng    *rand.Rand
	collab Collaborators

	grid    *Grid
	current Piece
	next    Piece
	twists  *TwistEngine
	effects *Effects

	state State
	score int
	level int
	lines int
	combo int
	ticks int

	clock        time.Duration // Running time only; frozen while paused
	dropAccum    time.Duration
	message      string
	messageUntil time.Duration
}

// NewSession creates a running session. The same config, seed and inputs
// always produce the same game.
func NewSession(cfg config.ZevConfig, seed int64, collab Collaborators) *Session {
	rng := rand.New(rand.NewSource(seed))
	s := &Session{
		cfg:     cfg,
		rng:     rng,
		collab:  collab.withDefaults(),
		grid:    NewGrid(cfg.Board.Width, cfg.Board.Height),
		twists:  NewTwistEngine(cfg.Twists, rng),
		effects: &Effects{},
	}
	s.reset(false)
	return s
}

// Restart discards the current game, including any active twist and all
// entities, and starts a fresh one.
func (s *Session) Restart() {
	s.reset(true)
}

// reset starts a fresh game. A restart is announced before the first spawn
// so observers see the twist it may roll.
func (s *Session) reset(restarted bool) {
	s.grid.Reset()
	s.effects.Reset()
	s.twists.Clear(s.playfield())
	s.state = StateRunning
	s.score = 0
	s.level = 1
	s.lines = 0
	s.combo = 0
	s.ticks = 0
	s.clock = 0
	s.dropAccum = 0
	s.message = ""
	s.messageUntil = 0
	s.next = s.randomPiece()
	s.collab.Sound.Trigger(SoundMusicStart)
	if restarted {
		s.collab.Observer.Observe(s.event(EventRestarted))
	}
	s.spawn()
	s.report()
}

func (s *Session) playfield() playfield {
	return playfield{grid: s.grid, piece: &s.current, effects: s.effects, rng: s.rng}
}

func (s *Session) randomPiece() Piece {
	return SpawnRandom(s.rng, s.cfg.Board.Width, s.cfg.Board.SpawnY)
}

// Advance moves the session clock forward by dt and fires every gravity tick
// and twist expiry that falls inside it, in time order. Nothing happens unless
// the session is running. Returns the number of gravity ticks fired.
func (s *Session) Advance(dt time.Duration) int {
	fired := 0
	for dt > 0 && s.state == StateRunning {
		interval := s.DropInterval()
		if s.dropAccum >= interval {
			s.dropAccum = 0
			s.tick()
			fired++
			continue
		}
		step := min(dt, interval-s.dropAccum)
		if deadline, ok := s.twists.Deadline(); ok && deadline > s.clock {
			step = min(step, deadline-s.clock)
		}
		s.clock += step
		s.dropAccum += step
		dt -= step
		s.expireTwist()
		if s.dropAccum >= s.DropInterval() {
			s.dropAccum = 0
			s.tick()
			fired++
		}
	}
	s.report()
	return fired
}

// Tick runs one gravity tick immediately, as if the drop timer fired.
func (s *Session) Tick() {
	if s.state != StateRunning {
		return
	}
	s.dropAccum = 0
	s.tick()
	s.report()
}

func (s *Session) tick() {
	s.ticks++
	if s.rng.Float64() < s.cfg.Twists.PerturbChance {
		s.perturb()
	}
	s.twists.tick(s.playfield())
	s.fall()
	s.effects.Step(s.grid.Width(), s.grid.Height())
	s.collab.Renderer.RenderFrame(s.Frame())
}

// perturb applies a random validated spin or one-cell nudge to the piece.
func (s *Session) perturb() {
	if s.rng.Intn(2) == 0 {
		dir := Clockwise
		if s.rng.Intn(2) == 0 {
			dir = CounterClockwise
		}
		if s.rotate(dir) {
			s.announce(MessageSpin)
			s.collab.Observer.Observe(s.event(EventPerturbed))
		}
		return
	}
	dx := 1
	if s.rng.Intn(2) == 0 {
		dx = -1
	}
	if s.shift(dx, 0) {
		s.announce(MessageNudge)
		s.collab.Observer.Observe(s.event(EventPerturbed))
	}
}

// gravity returns the vertical direction of a tick.
func (s *Session) gravity() int {
	if s.twists.Modifiers().GravityFlipped {
		return -1
	}
	return 1
}

// canShift reports whether the piece may move by (dx, dy). Upward moves also
// stop at the top of the board.
func (s *Session) canShift(dx, dy int) bool {
	if dy < 0 && s.current.Y+dy < 0 {
		return false
	}
	return !s.grid.Collides(s.current, dx, dy, nil)
}

func (s *Session) shift(dx, dy int) bool {
	if !s.canShift(dx, dy) {
		return false
	}
	s.current.X += dx
	s.current.Y += dy
	s.twists.moved()
	return true
}

func (s *Session) rotate(dir Direction) bool {
	m := Rotate(s.current.Matrix, dir)
	if s.grid.Collides(s.current, 0, 0, m) {
		return false
	}
	s.current.Matrix = m
	return true
}

// fall moves the piece one step with gravity or resolves the blocked piece.
func (s *Session) fall() {
	if !s.shift(0, s.gravity()) {
		s.settle()
	}
}

// settle resolves a piece that cannot move with gravity. A piece pinned at
// the ceiling by flipped gravity restores normal gravity instead of locking.
func (s *Session) settle() {
	if s.twists.Modifiers().GravityFlipped && s.current.Y <= 0 {
		s.twists.ReleaseGravity()
		if !s.grid.Collides(s.current, 0, -s.current.Y, nil) {
			s.current.Y = 0
		}
		return
	}
	s.lock()
}

// lock merges the piece, clears lines, scores and spawns the next piece.
func (s *Session) lock() {
	toppedOut := s.current.Top() < 0
	s.grid.Merge(s.current)
	s.collab.Sound.Trigger(SoundDrop)

	n := s.grid.ClearLines(func(row int, removed []Cell) {
		for x, v := range removed {
			if v == Empty {
				continue
			}
			s.effects.Enqueue(Entity{
				Kind:  EntityGhost,
				X:     float64(x),
				Y:     float64(row),
				Speed: s.rng.Float64()*3 + 1,
				Alpha: 1,
				Color: v,
			})
		}
	})
	s.award(n)

	if toppedOut {
		s.gameOver()
		return
	}
	s.spawn()
}

// award scores a lock that removed n lines and updates level and combo.
func (s *Session) award(n int) {
	if n == 0 {
		s.combo = 0
		return
	}
	s.combo++
	s.score += s.cfg.Scoring.LineReward(n) * s.level * s.twists.Modifiers().ScoreMultiplier
	s.lines += n
	s.collab.Sound.Trigger(SoundClear)
	ev := s.event(EventLinesCleared)
	ev.Lines = n
	s.collab.Observer.Observe(ev)

	if level := s.cfg.Timing.LevelFor(s.lines); level != s.level {
		s.level = level
		s.collab.Sound.Trigger(SoundLevelUp)
		s.collab.Observer.Observe(s.event(EventLevelUp))
	}
}

// spawn promotes the next piece, draws a new one, ends the game if the new
// piece is already blocked, and may start a twist.
func (s *Session) spawn() {
	s.current = s.next
	s.next = s.randomPiece()
	if s.grid.Collides(s.current, 0, 0, nil) {
		s.gameOver()
		return
	}
	if t, ok := s.twists.Roll(); ok {
		s.ActivateTwist(t)
	}
}

// ActivateTwist starts t, first clearing any active twist. Invalid kinds are ignored.
func (s *Session) ActivateTwist(t Twist) bool {
	if s.state == StateGameOver {
		return false
	}
	if prev, ok := s.twists.Active(); ok {
		s.twists.Clear(s.playfield())
		ev := s.event(EventTwistEnded)
		ev.Twist = prev
		s.collab.Observer.Observe(ev)
	}
	if !s.twists.Activate(t, s.clock, s.playfield()) {
		return false
	}
	s.announce(t.Kind.Message())
	s.collab.Sound.Trigger(SoundTwist)
	ev := s.event(EventTwistStarted)
	ev.Twist = t
	s.collab.Observer.Observe(ev)
	return true
}

func (s *Session) expireTwist() {
	if t, ok := s.twists.Expire(s.clock, s.playfield()); ok {
		ev := s.event(EventTwistEnded)
		ev.Twist = t
		s.collab.Observer.Observe(ev)
	}
}

func (s *Session) gameOver() {
	s.state = StateGameOver
	s.collab.Sound.Trigger(SoundGameOver)
	s.collab.Sound.Trigger(SoundMusicStop)
	s.collab.Observer.Observe(s.event(EventGameOver))
}

func (s *Session) announce(msg string) {
	if msg == "" {
		return
	}
	s.message = msg
	s.messageUntil = s.clock + s.cfg.Twists.MessageTime
}

// Apply executes a player command. Only pause and restart work while paused,
// and only restart after game over. Reports whether anything changed.
func (s *Session) Apply(cmd Command) bool {
	changed := s.apply(cmd)
	if changed {
		s.report()
	}
	return changed
}

func (s *Session) apply(cmd Command) bool {
	switch cmd {
	case CmdRestart:
		s.Restart()
		return true
	case CmdPause:
		return s.togglePause()
	}
	if s.state != StateRunning {
		return false
	}

	switch cmd {
	case CmdMoveLeft, CmdMoveRight:
		dx := -1
		if cmd == CmdMoveRight {
			dx = 1
		}
		if s.twists.Modifiers().ControlsInverted {
			dx = -dx
		}
		if !s.shift(dx, 0) {
			return false
		}
		s.collab.Sound.Trigger(SoundMove)
	case CmdSoftDrop:
		if !s.shift(0, s.gravity()) {
			return false
		}
		s.score += s.cfg.Scoring.SoftDrop
		s.collab.Sound.Trigger(SoundMove)
		s.dropAccum = 0
	case CmdRotate:
		if !s.rotate(Clockwise) {
			return false
		}
		s.twists.moved()
		s.collab.Sound.Trigger(SoundRotate)
	case CmdHardDrop:
		s.hardDrop()
	default:
		return false
	}
	return true
}

// hardDrop moves the piece with gravity until blocked, awarding points per
// cell, then resolves it like a blocked tick.
func (s *Session) hardDrop() {
	dir := s.gravity()
	cells := 0
	for s.canShift(0, dir) {
		s.current.Y += dir
		cells++
	}
	s.score += cells * s.cfg.Scoring.HardDropCell
	s.dropAccum = 0
	s.settle()
}

func (s *Session) togglePause() bool {
	switch s.state {
	case StateRunning:
		s.state = StatePaused
		s.collab.Sound.Trigger(SoundMusicStop)
	case StatePaused:
		s.state = StateRunning
		s.collab.Sound.Trigger(SoundMusicStart)
	default:
		return false
	}
	return true
}

func (s *Session) report() {
	s.collab.UI.ReportState(Report{
		Score:    s.score,
		Level:    s.level,
		Lines:    s.lines,
		Combo:    s.combo,
		Paused:   s.state == StatePaused,
		GameOver: s.state == StateGameOver,
		Message:  s.Message(),
	})
}

func (s *Session) event(t EventType) Event {
	return Event{Type: t, Score: s.score, Level: s.level, Clock: s.clock.Milliseconds()}
}

// DropInterval returns the current time between gravity ticks.
func (s *Session) DropInterval() time.Duration {
	d := time.Duration(float64(s.cfg.Timing.DropInterval(s.level)) * s.twists.Modifiers().SpeedFactor)
	return max(d, minDropInterval)
}

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Lines returns the total lines cleared.
func (s *Session) Lines() int { return s.lines }

// Combo returns the number of consecutive locks that cleared lines.
func (s *Session) Combo() int { return s.combo }

// Ticks returns the number of gravity ticks since the last restart.
func (s *Session) Ticks() int { return s.ticks }

// Clock returns the running time since the last restart.
func (s *Session) Clock() time.Duration { return s.clock }

// Current returns a copy of the falling piece.
func (s *Session) Current() Piece { return s.current.Clone() }

// Next returns a copy of the upcoming piece.
func (s *Session) Next() Piece { return s.next.Clone() }

// Board returns a copy of the grid cells.
func (s *Session) Board() [][]Cell { return s.grid.Snapshot() }

// Width returns the board width.
func (s *Session) Width() int { return s.grid.Width() }

// Height returns the board height.
func (s *Session) Height() int { return s.grid.Height() }

// Twist returns the active twist, if any.
func (s *Session) Twist() (Twist, bool) { return s.twists.Active() }

// TwistRemaining returns the time left on the active twist.
func (s *Session) TwistRemaining() time.Duration {
	deadline, ok := s.twists.Deadline()
	if !ok {
		return 0
	}
	return max(deadline-s.clock, 0)
}

// Modifiers returns the rule modifiers in effect.
func (s *Session) Modifiers() Modifiers { return s.twists.Modifiers() }

// Entities returns a copy of the live ephemeral entities.
func (s *Session) Entities() []Entity { return s.effects.Entities() }

// Portals returns a copy of the open void portals.
func (s *Session) Portals() []Portal { return s.effects.Portals() }

// Message returns the current announcement, or "" once it has faded.
func (s *Session) Message() string {
	if s.clock >= s.messageUntil {
		return ""
	}
	return s.message
}

// Frame returns the renderer view of the session.
func (s *Session) Frame() Frame {
	t, _ := s.twists.Active()
	return Frame{
		Grid:    s.grid.Snapshot(),
		Current: s.current.Clone(),
		Next:    s.next.Clone(),
		Twist:   t.Kind,
		Score:   s.score,
		Level:   s.level,
	}
}
