package zev

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joelgranik/game-of-zev/internal/config"
)

var catalogNames = []string{
	"gravity_flip", "drunk_controls", "piece_transform", "board_shake",
	"mystery_block", "ghost_piece", "speed_change", "block_vanish",
	"piece_explosion", "mirror_world", "dance_party", "size_change",
	"rainbow_mode", "multiplier", "crazy_rotation", "bouncy_blocks",
	"time_dilation", "fractal_trails", "dimension_shift", "kaleidoscope",
	"color_synesthesia", "reality_glitch", "quantum_pieces", "void_portals",
}

func TestCatalogOrderAndNames(t *testing.T) {
	kinds := Catalog()
	require.Len(t, kinds, len(catalogNames))
	for i, k := range kinds {
		assert.Equal(t, catalogNames[i], k.String())
		assert.NotEmpty(t, k.Message(), k.String())
		parsed, ok := ParseTwistKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, parsed)
	}

	_, ok := ParseTwistKind("tea_time")
	assert.False(t, ok)
	assert.False(t, TwistNone.Valid())
	assert.False(t, twistEnd.Valid())
}

func TestChoosePayloads(t *testing.T) {
	e := NewTwistEngine(config.DefaultZevConfig().Twists, rand.New(rand.NewSource(5)))
	factors := map[float64]bool{}
	scales := map[float64]bool{}
	for range 100 {
		factors[e.Choose(TwistSpeedChange).Factor] = true
		factors[e.Choose(TwistTimeDilation).Factor] = true
		scales[e.Choose(TwistSizeChange).Scale] = true
	}
	assert.Equal(t, map[float64]bool{0.5: true, 2: true}, factors)
	assert.Equal(t, map[float64]bool{0.5: true, 1.5: true}, scales)
	assert.Zero(t, e.Choose(TwistMirrorWorld).Factor)
}

// Every kind can be activated, keeps the piece valid, and is the only
// active twist until it expires.
func TestEveryTwistKind(t *testing.T) {
	for _, kind := range Catalog() {
		t.Run(kind.String(), func(t *testing.T) {
			s, rec := newTestSession(t)
			for x := range 7 {
				s.grid.Inject(x, 19, 2)
				s.grid.Inject(x+2, 18, 5)
			}
			place(s, ShapeT, 4, 6)

			tw := s.twists.Choose(kind)
			require.True(t, s.ActivateTwist(tw))

			active, ok := s.Twist()
			require.True(t, ok)
			assert.Equal(t, kind, active.Kind)
			assert.Equal(t, kind.Message(), s.Message())
			assert.Equal(t, 1, rec.count(SoundTwist))
			assert.False(t, s.grid.Collides(s.current, 0, 0, nil))

			for range 3 {
				s.Tick()
				if s.State() != StateRunning {
					break
				}
				assert.False(t, s.grid.Collides(s.current, 0, 0, nil))
				cur, _ := s.Twist()
				assert.Equal(t, kind, cur.Kind)
			}

			s.Advance(config.DefaultZevConfig().Twists.Duration)
			_, ok = s.Twist()
			assert.False(t, ok)
			assert.Equal(t, baselineModifiers(), s.Modifiers())
			assert.Empty(t, s.Portals())
		})
	}
}

func TestTwistsNeverStack(t *testing.T) {
	s, rec := newTestSession(t)
	place(s, ShapeT, 4, 6)

	require.True(t, s.ActivateTwist(Twist{Kind: TwistSpeedChange, Factor: 0.5}))
	assert.Equal(t, 500*time.Millisecond, s.DropInterval())

	require.True(t, s.ActivateTwist(Twist{Kind: TwistGravityFlip}))
	assert.Equal(t, time.Second, s.DropInterval())
	assert.True(t, s.Modifiers().GravityFlipped)

	require.True(t, s.ActivateTwist(Twist{Kind: TwistDrunkControls}))
	assert.False(t, s.Modifiers().GravityFlipped)
	assert.True(t, s.Modifiers().ControlsInverted)

	require.True(t, s.ActivateTwist(Twist{Kind: TwistMultiplier}))
	assert.False(t, s.Modifiers().ControlsInverted)
	assert.Equal(t, 2, s.Modifiers().ScoreMultiplier)

	require.True(t, s.ActivateTwist(Twist{Kind: TwistTimeDilation, Factor: 2}))
	require.True(t, s.ActivateTwist(Twist{Kind: TwistSpeedChange, Factor: 2}))
	assert.Equal(t, 2*time.Second, s.DropInterval(), "factors replace, never compound")

	assert.Equal(t, 5, rec.eventCount(EventTwistEnded))
	assert.Equal(t, 6, rec.eventCount(EventTwistStarted))
}

func TestActivateRejectsInvalidKinds(t *testing.T) {
	s, _ := newTestSession(t)
	assert.False(t, s.ActivateTwist(Twist{Kind: TwistNone}))
	assert.False(t, s.ActivateTwist(Twist{Kind: TwistKind(99)}))
	_, ok := s.Twist()
	assert.False(t, ok)
}

func TestDrunkControlsSwapLeftRight(t *testing.T) {
	s, _ := newTestSession(t)
	place(s, ShapeO, 4, 6)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistDrunkControls}))

	s.Apply(CmdMoveLeft)
	assert.Equal(t, 5, s.Current().X)
	s.Apply(CmdMoveRight)
	s.Apply(CmdMoveRight)
	assert.Equal(t, 3, s.Current().X)
}

func TestMultiplierDoublesLineReward(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistMultiplier}))
	fillRowExcept(s, 19, 0)
	s.current = single(0, 19)

	s.lock()

	assert.Equal(t, 200, s.Score())
}

func TestMirrorWorldMirrorsBoardAndPiece(t *testing.T) {
	s, _ := newTestSession(t)
	s.grid.Inject(0, 19, 3)
	place(s, ShapeJ, 0, 5)

	require.True(t, s.ActivateTwist(Twist{Kind: TwistMirrorWorld}))

	assert.Equal(t, Cell(3), s.grid.At(9, 19))
	assert.Equal(t, Empty, s.grid.At(0, 19))
	p := s.Current()
	assert.Equal(t, 7, p.X)
	assert.True(t, ShapeMatrix(ShapeJ).MirrorRows().Equal(p.Matrix))
	assert.False(t, s.grid.Collides(p, 0, 0, nil))
}

func TestMysteryBlockLandsInLowerHalf(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rec := &recorder{}
		s := NewSession(quietConfig(), seed, rec.collaborators())
		place(s, ShapeT, 4, 0)

		s.ActivateTwist(Twist{Kind: TwistMysteryBlock})

		require.Equal(t, 1, s.grid.Filled(), "seed %d", seed)
		for y, row := range s.Board() {
			for _, c := range row {
				if c != Empty {
					assert.Equal(t, Mystery, c)
					assert.GreaterOrEqual(t, y, 10)
				}
			}
		}
	}
}

func TestBlockVanishOnlyRemoves(t *testing.T) {
	s, _ := newTestSession(t)
	for y := 10; y < 20; y++ {
		fillRowExcept(s, y, y%10)
	}
	before := s.grid.Filled()
	place(s, ShapeT, 4, 0)

	s.ActivateTwist(Twist{Kind: TwistBlockVanish})

	after := s.grid.Filled()
	assert.LessOrEqual(t, after, before)
	assert.GreaterOrEqual(t, after, before-10)
}

func TestEntityTwists(t *testing.T) {
	tests := []struct {
		kind  TwistKind
		want  EntityKind
		count int
		tick  bool
	}{
		{TwistGhostPiece, EntityGhost, 5, false},
		{TwistPieceExplosion, EntityParticle, 8, false},
		{TwistFractalTrails, EntityTrail, 1, true},
		{TwistQuantumPieces, EntityEcho, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s, _ := newTestSession(t)
			place(s, ShapeT, 4, 6)
			require.True(t, s.ActivateTwist(Twist{Kind: tt.kind}))
			if tt.tick {
				require.Empty(t, s.Entities())
				s.twists.tick(s.playfield())
			}

			ents := s.Entities()
			require.Len(t, ents, tt.count)
			for _, e := range ents {
				assert.Equal(t, tt.want, e.Kind)
			}
		})
	}
}

func TestGhostPieceSpawnsAboveBoard(t *testing.T) {
	s, _ := newTestSession(t)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistGhostPiece}))
	for _, e := range s.Entities() {
		assert.Equal(t, -2.0, e.Y)
		assert.Equal(t, 0.5, e.Alpha)
		assert.GreaterOrEqual(t, e.Speed, 0.5)
		assert.Less(t, e.Speed, 2.5)
	}
}

func TestVoidPortalsCloseWithTwist(t *testing.T) {
	s, _ := newTestSession(t)
	place(s, ShapeT, 4, 0)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistVoidPortals}))

	portals := s.Portals()
	require.Len(t, portals, 3)
	for _, p := range portals {
		assert.True(t, s.grid.InBounds(p.X, p.Y))
	}

	require.True(t, s.ActivateTwist(Twist{Kind: TwistRainbowMode}))
	assert.Empty(t, s.Portals())
}

func TestColorSynesthesiaCountsMoves(t *testing.T) {
	s, _ := newTestSession(t)
	place(s, ShapeT, 4, 6)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistColorSynesthesia}))

	s.Apply(CmdMoveLeft)
	s.Apply(CmdRotate)
	s.Tick()

	assert.Equal(t, 3, s.Modifiers().Pulses)
}

func TestCrazyRotationKeepsPieceValid(t *testing.T) {
	s, _ := newTestSession(t)
	place(s, ShapeI, -1, 6)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistCrazyRotation}))

	for range 10 {
		s.twists.tick(s.playfield())
		require.False(t, s.grid.Collides(s.current, 0, 0, nil))
	}
	assert.True(t, ShapeMatrix(ShapeI).Equal(s.Current().Matrix), "every rotation at the wall collides")
}

func TestPieceTransformKeepsPosition(t *testing.T) {
	s, _ := newTestSession(t)
	place(s, ShapeT, 4, 6)
	require.True(t, s.ActivateTwist(Twist{Kind: TwistPieceTransform}))

	p := s.Current()
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 6, p.Y)
	assert.True(t, ShapeMatrix(p.Shape).Equal(p.Matrix))
	assert.False(t, s.grid.Collides(p, 0, 0, nil))
}

func TestEffectsStep(t *testing.T) {
	var fx Effects
	fx.Enqueue(Entity{Kind: EntityGhost, X: 3, Y: 0, Speed: 1, Alpha: 1})
	fx.Enqueue(Entity{Kind: EntityGhost, X: 3, Y: 19.5, Speed: 1, Alpha: 1})
	fx.Enqueue(Entity{Kind: EntityParticle, X: 0.5, Y: 5, DX: -2, DY: 0, Alpha: 1})
	fx.Enqueue(Entity{Kind: EntityTrail, X: -1, Y: 5, Alpha: 0.3, Fade: 0.2, Matrix: ShapeMatrix(ShapeI)})
	fx.Enqueue(Entity{Kind: EntityGhost, Alpha: 0})
	require.Equal(t, 4, fx.Len())

	fx.Step(10, 20)

	ents := fx.Entities()
	require.Len(t, ents, 2, "fell off the bottom and left the side")
	assert.Equal(t, 1.0, ents[0].Y)
	assert.InDelta(t, 0.99, ents[0].Alpha, 1e-9)
	assert.Equal(t, EntityTrail, ents[1].Kind)

	fx.Step(10, 20)
	assert.Equal(t, 1, fx.Len(), "trail faded out")

	assert.False(t, fx.OpenPortal(Portal{X: 10, Y: 0}, 10, 20))
	assert.False(t, fx.OpenPortal(Portal{X: 0, Y: -1}, 10, 20))
	assert.True(t, fx.OpenPortal(Portal{X: 9, Y: 19}, 10, 20))
	fx.Reset()
	assert.Zero(t, fx.Len())
	assert.Empty(t, fx.Portals())
}

func TestParticlesSlowDown(t *testing.T) {
	var fx Effects
	fx.Enqueue(Entity{Kind: EntityParticle, X: 5, Y: 5, DX: 2, DY: 0, Alpha: 1, Fade: 0.05})
	fx.Step(20, 20)
	e := fx.Entities()[0]
	assert.Equal(t, 7.0, e.X)
	assert.InDelta(t, 1.9, e.DX, 1e-9)
	assert.InDelta(t, 0.95, e.Alpha, 1e-9)
}
