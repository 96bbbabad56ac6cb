package zev

import "github.com/joelgranik/game-of-zev/internal/core"

// EntityKind classifies an ephemeral visual entity.
type EntityKind int

const (
	EntityGhost    EntityKind = iota // Falling fragment: line clears, ghost_piece
	EntityParticle                   // Radial debris: piece_explosion
	EntityTrail                      // Afterimage of the piece: fractal_trails
	EntityEcho                       // Offset copy of the piece: quantum_pieces
)

// Entity is a transient object that never touches the board.
// Position is in board cells and may be fractional.
type Entity struct {
	Kind   EntityKind
	X, Y   float64
	DX, DY float64 // Per-step velocity for particles
	Speed  float64 // Per-step fall speed for ghosts
	Alpha  float64 // 1 is opaque; removed at 0
	Fade   float64 // Alpha lost per step
	Color  Cell
	Matrix Matrix // Trails and echoes carry the piece layout
}

// Portal is a void portal drawn on the board while void_portals is active.
type Portal struct {
	X, Y int
}

const (
	ghostFade    = 0.01
	particleDrag = 0.95
	trailFade    = 0.2
	echoFade     = 0.5
	maxEntities  = 256
)

// Effects holds the ephemeral entities of one session.
type Effects struct {
	entities []Entity
	portals  []Portal
}

// Enqueue adds an entity. Entities with no alpha are ignored and the oldest
// entity is dropped when the list is full.
func (e *Effects) Enqueue(ent Entity) {
	if ent.Alpha <= 0 {
		return
	}
	if ent.Fade <= 0 {
		ent.Fade = ghostFade
	}
	if len(e.entities) >= maxEntities {
		e.entities = e.entities[1:]
	}
	e.entities = append(e.entities, ent)
}

// OpenPortal adds a portal if it lies on a width x height board.
func (e *Effects) OpenPortal(p Portal, width, height int) bool {
	if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
		return false
	}
	e.portals = append(e.portals, p)
	return true
}

// ClosePortals removes every portal.
func (e *Effects) ClosePortals() {
	e.portals = nil
}

// Step advances every entity one step on a width x height board and drops
// the ones that faded out or fell past the bottom. Ghosts and particles are
// also dropped once they leave the sides.
func (e *Effects) Step(width, height int) {
	kept := e.entities[:0]
	for _, ent := range e.entities {
		switch ent.Kind {
		case EntityParticle:
			ent.X += ent.DX
			ent.Y += ent.DY
			ent.DX *= particleDrag
			ent.DY *= particleDrag
		case EntityGhost:
			if ent.Y < float64(height) {
				ent.Y += ent.Speed
			}
		}
		ent.Alpha = core.ClampF(ent.Alpha-ent.Fade, 0, 1)
		offSide := ent.Matrix == nil && (ent.X < 0 || ent.X >= float64(width))
		if ent.Alpha <= 0 || ent.Y >= float64(height) || offSide {
			continue
		}
		kept = append(kept, ent)
	}
	e.entities = kept
}

// Entities returns a copy of the live entities.
func (e *Effects) Entities() []Entity {
	return append([]Entity(nil), e.entities...)
}

// Portals returns a copy of the open portals.
func (e *Effects) Portals() []Portal {
	return append([]Portal(nil), e.portals...)
}

// Len returns the number of live entities.
func (e *Effects) Len() int { return len(e.entities) }

// Reset discards all entities and portals.
func (e *Effects) Reset() {
	e.entities = nil
	e.portals = nil
}
