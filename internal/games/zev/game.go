package zev

import (
	"time"

	"github.com/joelgranik/game-of-zev/internal/config"
	"github.com/joelgranik/game-of-zev/internal/core"
	"github.com/joelgranik/game-of-zev/internal/registry"
)

// Mode selects between the twisted game and plain falling blocks.
type Mode string

const (
	ModeTwisted Mode = "zev"
	ModeClassic Mode = "zev_classic"
)

// Game adapts a Session to the registry.Game frame loop.
type Game struct {
	mode    Mode
	cfg     config.ZevConfig
	collab  Collaborators
	session *Session
	frame   time.Duration
}

// New creates a twisted game with the default configuration.
func New() *Game {
	return &Game{mode: ModeTwisted, cfg: config.DefaultZevConfig()}
}

// NewClassic creates a game with twists and perturbations disabled.
func NewClassic() *Game {
	return &Game{mode: ModeClassic, cfg: config.ClassicZevConfig()}
}

func init() {
	registry.Register(string(ModeTwisted), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeClassic), func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Zev (Classic)"
	}
	return "The Game of Zev"
}

// Configure replaces the configuration used by the next Reset.
// Classic mode keeps twists off whatever the file says.
func (g *Game) Configure(cfg config.ZevConfig) {
	if g.mode == ModeClassic {
		cfg.Twists.Enabled = false
		cfg.Twists.Chance = 0
		cfg.Twists.PerturbChance = 0
	}
	g.cfg = cfg
}

// Attach sets the presentation adapters used by the next Reset.
func (g *Game) Attach(c Collaborators) {
	g.collab = c
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.frame = time.Second / time.Duration(cfg.FrameRate())
	g.session = NewSession(g.cfg, cfg.Seed, g.collab)
}

// Session returns the running session, or nil before Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Step applies the frame's actions in order, then advances the session
// clock by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	for _, a := range in.Actions {
		if cmd, ok := commandFor(a); ok {
			g.session.Apply(cmd)
		}
	}
	ticks := g.session.Advance(g.frame)
	return core.StepResult{State: g.State(), Ticks: ticks}
}

func commandFor(a core.Action) (Command, bool) {
	switch a {
	case core.ActionLeft:
		return CmdMoveLeft, true
	case core.ActionRight:
		return CmdMoveRight, true
	case core.ActionSoftDrop:
		return CmdSoftDrop, true
	case core.ActionRotate:
		return CmdRotate, true
	case core.ActionHardDrop:
		return CmdHardDrop, true
	case core.ActionPause:
		return CmdPause, true
	case core.ActionRestart:
		return CmdRestart, true
	default:
		return 0, false
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	if s == nil {
		return core.GameState{Level: 1}
	}
	return core.GameState{
		Score:    s.Score(),
		Level:    s.Level(),
		Lines:    s.Lines(),
		GameOver: s.State() == StateGameOver,
		Paused:   s.State() == StatePaused,
	}
}
