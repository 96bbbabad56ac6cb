package zev

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allShapes() []Shape {
	return []Shape{ShapeI, ShapeJ, ShapeL, ShapeO, ShapeS, ShapeT, ShapeZ}
}

func TestShapeMatricesAreSquare(t *testing.T) {
	for _, s := range allShapes() {
		m := ShapeMatrix(s)
		require.GreaterOrEqual(t, m.Size(), 2, s.String())
		require.LessOrEqual(t, m.Size(), 4, s.String())
		filled := 0
		for _, row := range m {
			require.Len(t, row, m.Size(), s.String())
			for _, v := range row {
				if v != Empty {
					assert.Equal(t, Cell(s)+1, v, s.String())
					filled++
				}
			}
		}
		assert.Equal(t, 4, filled, s.String())
	}
}

func TestRotationRoundTrip(t *testing.T) {
	for _, s := range allShapes() {
		t.Run(s.String(), func(t *testing.T) {
			m := ShapeMatrix(s)

			assert.True(t, m.Equal(Rotate(Rotate(m, Clockwise), CounterClockwise)))
			assert.True(t, m.Equal(Rotate(Rotate(m, CounterClockwise), Clockwise)))

			r := m
			for range 4 {
				r = Rotate(r, Clockwise)
			}
			assert.True(t, m.Equal(r))
		})
	}
}

func TestRotateClockwise(t *testing.T) {
	got := Rotate(ShapeMatrix(ShapeT), Clockwise)
	want := Matrix{
		{0, 6, 0},
		{0, 6, 6},
		{0, 6, 0},
	}
	assert.True(t, want.Equal(got), "got %v", got)

	got = Rotate(ShapeMatrix(ShapeT), CounterClockwise)
	want = Matrix{
		{0, 6, 0},
		{6, 6, 0},
		{0, 6, 0},
	}
	assert.True(t, want.Equal(got), "got %v", got)
}

func TestRotateDoesNotMutate(t *testing.T) {
	m := ShapeMatrix(ShapeL)
	orig := m.Clone()
	Rotate(m, Clockwise)
	assert.True(t, orig.Equal(m))
}

func TestNewPieceSpawnPosition(t *testing.T) {
	tests := []struct {
		shape Shape
		x     int
	}{
		{ShapeI, 3},
		{ShapeO, 4},
		{ShapeT, 4},
		{ShapeZ, 4},
	}
	for _, tt := range tests {
		p := NewPiece(tt.shape, 10, -4)
		assert.Equal(t, tt.x, p.X, tt.shape.String())
		assert.Equal(t, -4, p.Y, tt.shape.String())
	}
}

func TestSpawnRandomCoversAllShapes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := make(map[Shape]int)
	for range 700 {
		p := SpawnRandom(rng, 10, -4)
		seen[p.Shape]++
	}
	assert.Len(t, seen, ShapeCount)
	for s, n := range seen {
		assert.Greater(t, n, 50, "shape %s drawn %d times", s, n)
	}
}

func TestPieceTopBottom(t *testing.T) {
	p := NewPiece(ShapeT, 10, 5)
	assert.Equal(t, 5, p.Top())
	assert.Equal(t, 6, p.Bottom())

	p = NewPiece(ShapeI, 10, -4)
	assert.Equal(t, -4, p.Top())
	assert.Equal(t, -1, p.Bottom())
}

func TestMirrorRows(t *testing.T) {
	m := ShapeMatrix(ShapeJ).MirrorRows()
	want := Matrix{
		{0, 2, 0},
		{0, 2, 0},
		{0, 2, 2},
	}
	assert.True(t, want.Equal(m))
}
