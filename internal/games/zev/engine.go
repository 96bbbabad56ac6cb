package zev

import (
	"math"
	"math/rand"
	"time"

	"github.com/joelgranik/game-of-zev/internal/config"
)

// Modifiers are the rule changes a twist can make. The TwistEngine is their
// only writer; everything else reads them.
type Modifiers struct {
	GravityFlipped   bool    // Ticks move the piece up
	ControlsInverted bool    // Left and right are swapped
	SpeedFactor      float64 // Drop interval multiplier
	ScoreMultiplier  int     // Line clear reward multiplier
	Scale            float64 // Cosmetic piece scale
	Pulses           int     // Piece moves seen under color_synesthesia
}

func baselineModifiers() Modifiers {
	return Modifiers{SpeedFactor: 1, ScoreMultiplier: 1, Scale: 1}
}

// playfield is the part of a session that twists may change.
type playfield struct {
	grid    *Grid
	piece   *Piece
	effects *Effects
	rng     *rand.Rand
}

// TwistEngine selects, applies and expires twists. It is either idle or holds
// exactly one active twist with an expiry deadline on the session clock.
type TwistEngine struct {
	cfg     config.TwistConfig
	rng     *rand.Rand
	kinds   []TwistKind
	active  Twist
	expires time.Duration
	mods    Modifiers
}

// NewTwistEngine creates an idle engine. Kinds named in cfg.Disabled are never chosen.
func NewTwistEngine(cfg config.TwistConfig, rng *rand.Rand) *TwistEngine {
	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, name := range cfg.Disabled {
		disabled[name] = true
	}
	e := &TwistEngine{cfg: cfg, rng: rng, mods: baselineModifiers()}
	for _, k := range Catalog() {
		if !disabled[k.String()] {
			e.kinds = append(e.kinds, k)
		}
	}
	return e
}

// Active returns the active twist, if any.
func (e *TwistEngine) Active() (Twist, bool) {
	return e.active, e.active.Kind != TwistNone
}

// Deadline returns when the active twist expires.
func (e *TwistEngine) Deadline() (time.Duration, bool) {
	return e.expires, e.active.Kind != TwistNone
}

// Modifiers returns the current rule modifiers.
func (e *TwistEngine) Modifiers() Modifiers {
	return e.mods
}

// Roll decides whether a spawn triggers a twist and, if so, which one.
func (e *TwistEngine) Roll() (Twist, bool) {
	if !e.cfg.Enabled || len(e.kinds) == 0 || e.rng.Float64() >= e.cfg.Chance {
		return Twist{}, false
	}
	return e.Choose(e.kinds[e.rng.Intn(len(e.kinds))]), true
}

// Choose builds a twist of the given kind with a random payload.
func (e *TwistEngine) Choose(kind TwistKind) Twist {
	t := Twist{Kind: kind}
	switch kind {
	case TwistSpeedChange, TwistTimeDilation:
		t.Factor = e.pick(0.5, 2)
	case TwistSizeChange:
		t.Scale = e.pick(0.5, 1.5)
	}
	return t
}

func (e *TwistEngine) pick(a, b float64) float64 {
	if e.rng.Float64() < 0.5 {
		return a
	}
	return b
}

// Activate clears any active twist, then applies t and starts its timer.
// Invalid kinds are ignored.
func (e *TwistEngine) Activate(t Twist, now time.Duration, pf playfield) bool {
	if !t.Kind.Valid() {
		return false
	}
	e.Clear(pf)
	e.active = t
	e.expires = now + e.cfg.Duration
	e.apply(t, pf)
	return true
}

// Clear ends the active twist and restores every modifier to its baseline.
func (e *TwistEngine) Clear(pf playfield) {
	e.active = Twist{}
	e.expires = 0
	e.mods = baselineModifiers()
	if pf.effects != nil {
		pf.effects.ClosePortals()
	}
}

// Expire clears the active twist if its deadline has passed.
func (e *TwistEngine) Expire(now time.Duration, pf playfield) (Twist, bool) {
	t, ok := e.Active()
	if !ok || now < e.expires {
		return Twist{}, false
	}
	e.Clear(pf)
	return t, true
}

// ReleaseGravity restores normal gravity without ending the twist.
func (e *TwistEngine) ReleaseGravity() {
	e.mods.GravityFlipped = false
}

// apply performs the one-shot part of a twist.
func (e *TwistEngine) apply(t Twist, pf playfield) {
	g := pf.grid
	switch t.Kind {
	case TwistGravityFlip:
		e.mods.GravityFlipped = true
	case TwistDrunkControls:
		e.mods.ControlsInverted = true
	case TwistPieceTransform:
		shape := Shape(pf.rng.Intn(ShapeCount))
		m := ShapeMatrix(shape)
		if !g.Collides(*pf.piece, 0, 0, m) {
			pf.piece.Shape = shape
			pf.piece.Matrix = m
		}
	case TwistMysteryBlock:
		x := pf.rng.Intn(g.Width())
		y := g.Height()/2 + pf.rng.Intn(g.Height()-g.Height()/2)
		if !covers(*pf.piece, x, y) {
			g.Inject(x, y, Mystery)
		}
	case TwistGhostPiece:
		for range e.cfg.GhostCount {
			pf.effects.Enqueue(Entity{
				Kind:  EntityGhost,
				X:     float64(pf.rng.Intn(g.Width())),
				Y:     -2,
				Speed: pf.rng.Float64()*2 + 0.5,
				Alpha: 0.5,
				Color: Cell(pf.rng.Intn(ShapeCount) + 1),
			})
		}
	case TwistSpeedChange, TwistTimeDilation:
		e.mods.SpeedFactor = t.Factor
	case TwistBlockVanish:
		for range e.cfg.VanishAttempts {
			g.ClearCell(pf.rng.Intn(g.Width()), pf.rng.Intn(g.Height()))
		}
	case TwistPieceExplosion:
		p := *pf.piece
		cx := float64(p.X) + float64(p.Matrix.Size())/2
		cy := float64(p.Y) + float64(p.Matrix.Size())/2
		for i := range 8 {
			angle := float64(i) * math.Pi / 4
			pf.effects.Enqueue(Entity{
				Kind:  EntityParticle,
				X:     cx,
				Y:     cy,
				DX:    math.Cos(angle) * 2,
				DY:    math.Sin(angle) * 2,
				Alpha: 1,
				Fade:  0.05,
				Color: Cell(p.Shape) + 1,
			})
		}
	case TwistMirrorWorld:
		g.Mirror()
		p := pf.piece
		p.Matrix = p.Matrix.MirrorRows()
		p.X = g.Width() - p.X - p.Matrix.Size()
	case TwistSizeChange:
		e.mods.Scale = t.Scale
	case TwistMultiplier:
		e.mods.ScoreMultiplier = max(1, e.cfg.ScoreMultiplier)
	case TwistVoidPortals:
		for range e.cfg.PortalCount {
			pf.effects.OpenPortal(Portal{X: pf.rng.Intn(g.Width()), Y: pf.rng.Intn(g.Height())}, g.Width(), g.Height())
		}
	case TwistCrazyRotation, TwistFractalTrails, TwistQuantumPieces, TwistColorSynesthesia:
		// Continuous; see tick and moved.
	case TwistBoardShake, TwistDanceParty, TwistRainbowMode, TwistBouncyBlocks,
		TwistDimensionShift, TwistKaleidoscope, TwistRealityGlitch:
		// Drawn by the renderer from the active kind.
	case TwistNone:
	}
}

// tick runs the continuous part of the active twist once per gravity tick.
func (e *TwistEngine) tick(pf playfield) {
	p := pf.piece
	switch e.active.Kind {
	case TwistCrazyRotation:
		dir := Clockwise
		if pf.rng.Intn(2) == 0 {
			dir = CounterClockwise
		}
		if m := Rotate(p.Matrix, dir); !pf.grid.Collides(*p, 0, 0, m) {
			p.Matrix = m
		}
	case TwistFractalTrails:
		pf.effects.Enqueue(Entity{
			Kind:   EntityTrail,
			X:      float64(p.X),
			Y:      float64(p.Y),
			Alpha:  0.6,
			Fade:   trailFade,
			Color:  Cell(p.Shape) + 1,
			Matrix: p.Matrix.Clone(),
		})
	case TwistQuantumPieces:
		pf.effects.Enqueue(Entity{
			Kind:   EntityEcho,
			X:      float64(p.X + pf.rng.Intn(5) - 2),
			Y:      float64(p.Y),
			Alpha:  0.5,
			Fade:   echoFade,
			Color:  Cell(p.Shape) + 1,
			Matrix: p.Matrix.Clone(),
		})
	}
}

// moved runs the per-move part of the active twist.
func (e *TwistEngine) moved() {
	if e.active.Kind == TwistColorSynesthesia {
		e.mods.Pulses++
	}
}

// covers reports whether a filled cell of p sits at board (x, y).
func covers(p Piece, x, y int) bool {
	hit := false
	p.Cells(func(cx, cy int, _ Cell) {
		if cx == x && cy == y {
			hit = true
		}
	})
	return hit
}
