package zev

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Ticks    int
	ClockMS  int64
	State    string
	Score    int
	Level    int
	Lines    int
	Combo    int
	Shape    string
	PieceX   int
	PieceY   int
	Next     string
	Twist    string
	Filled   int // Non-empty board cells
	Entities int
}

// Snapshot returns the current session snapshot for determinism verification.
func (s *Session) Snapshot() Snapshot {
	t, _ := s.twists.Active()
	return Snapshot{
		Ticks:    s.ticks,
		ClockMS:  s.clock.Milliseconds(),
		State:    s.state.String(),
		Score:    s.score,
		Level:    s.level,
		Lines:    s.lines,
		Combo:    s.combo,
		Shape:    s.current.Shape.String(),
		PieceX:   s.current.X,
		PieceY:   s.current.Y,
		Next:     s.next.Shape.String(),
		Twist:    t.String(),
		Filled:   s.grid.Filled(),
		Entities: s.effects.Len(),
	}
}

// Snapshot returns the snapshot of the running session.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{}
	}
	return g.session.Snapshot()
}
