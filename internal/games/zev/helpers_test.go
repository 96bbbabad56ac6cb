package zev

import (
	"testing"

	"github.com/joelgranik/game-of-zev/internal/config"
)

// recorder captures everything a session pushes to its collaborators.
type recorder struct {
	sounds  []SoundEvent
	frames  int
	reports []Report
	events  []Event
}

func (r *recorder) Trigger(ev SoundEvent)  { r.sounds = append(r.sounds, ev) }
func (r *recorder) RenderFrame(Frame)      { r.frames++ }
func (r *recorder) ReportState(rep Report) { r.reports = append(r.reports, rep) }
func (r *recorder) Observe(ev Event)       { r.events = append(r.events, ev) }

func (r *recorder) collaborators() Collaborators {
	return Collaborators{Sound: r, Renderer: r, UI: r, Observer: r}
}

func (r *recorder) count(ev SoundEvent) int {
	n := 0
	for _, s := range r.sounds {
		if s == ev {
			n++
		}
	}
	return n
}

func (r *recorder) eventCount(t EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func (r *recorder) lastReport() Report {
	if len(r.reports) == 0 {
		return Report{}
	}
	return r.reports[len(r.reports)-1]
}

// quietConfig has no random twists or perturbations.
func quietConfig() config.ZevConfig {
	cfg := config.DefaultZevConfig()
	cfg.Twists.Chance = 0
	cfg.Twists.PerturbChance = 0
	return cfg
}

func newTestSession(t *testing.T, mutate ...func(*config.ZevConfig)) (*Session, *recorder) {
	t.Helper()
	cfg := quietConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	rec := &recorder{}
	return NewSession(cfg, 1, rec.collaborators()), rec
}

// place replaces the falling piece.
func place(s *Session, shape Shape, x, y int) {
	s.current = NewPiece(shape, s.Width(), y)
	s.current.X = x
}

// fillRowExcept fills row y of the session board except column gap.
func fillRowExcept(s *Session, y, gap int) {
	for x := range s.Width() {
		if x != gap {
			s.grid.Inject(x, y, 3)
		}
	}
}

// single is a one-cell piece at (x, y).
func single(x, y int) Piece {
	return Piece{Shape: ShapeO, Matrix: Matrix{{4}}, X: x, Y: y}
}
