package zev

import (
	"math/rand"

	"github.com/joelgranik/game-of-zev/internal/core"
)

// Shape identifies one of the seven piece variants.
type Shape int

const (
	ShapeI Shape = iota
	ShapeJ
	ShapeL
	ShapeO
	ShapeS
	ShapeT
	ShapeZ
)

// ShapeCount is the number of piece variants.
const ShapeCount = 7

var shapeNames = [ShapeCount]string{"I", "J", "L", "O", "S", "T", "Z"}

func (s Shape) String() string {
	if s < 0 || int(s) >= ShapeCount {
		return "?"
	}
	return shapeNames[s]
}

// Matrix is a square piece layout; nonzero entries are the piece color.
type Matrix [][]Cell

// Size returns the side length.
func (m Matrix) Size() int { return len(m) }

// Clone returns a deep copy.
func (m Matrix) Clone() Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether both matrices have the same layout.
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for y := range m {
		if len(m[y]) != len(o[y]) {
			return false
		}
		for x := range m[y] {
			if m[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// MirrorRows reverses each row, the piece-local half of a board mirror.
func (m Matrix) MirrorRows() Matrix {
	out := m.Clone()
	for _, row := range out {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
	return out
}

// ShapeMatrix returns a fresh matrix for a shape in its spawn orientation.
func ShapeMatrix(s Shape) Matrix {
	switch s {
	case ShapeI:
		return Matrix{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
		}
	case ShapeJ:
		return Matrix{
			{0, 2, 0},
			{0, 2, 0},
			{2, 2, 0},
		}
	case ShapeL:
		return Matrix{
			{0, 3, 0},
			{0, 3, 0},
			{0, 3, 3},
		}
	case ShapeO:
		return Matrix{
			{4, 4},
			{4, 4},
		}
	case ShapeS:
		return Matrix{
			{0, 5, 5},
			{5, 5, 0},
			{0, 0, 0},
		}
	case ShapeT:
		return Matrix{
			{0, 6, 0},
			{6, 6, 6},
			{0, 0, 0},
		}
	default:
		return Matrix{
			{7, 7, 0},
			{0, 7, 7},
			{0, 0, 0},
		}
	}
}

// Direction is a rotation sense.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Rotate returns m turned a quarter in the given direction. It never
// mutates m; callers validate the result with Grid.Collides before use.
func Rotate(m Matrix, dir Direction) Matrix {
	n := len(m)
	out := make(Matrix, n)
	for i := range out {
		out[i] = make([]Cell, n)
	}
	for y := range n {
		for x := range n {
			if dir == Clockwise {
				out[x][n-1-y] = m[y][x]
			} else {
				out[n-1-x][y] = m[y][x]
			}
		}
	}
	return out
}

// Piece is a shape placed on the board. Y may be negative while the piece
// is still entering from above.
type Piece struct {
	Shape  Shape
	Matrix Matrix
	X, Y   int
}

// NewPiece creates a piece centered horizontally at row spawnY.
func NewPiece(s Shape, boardWidth, spawnY int) Piece {
	m := ShapeMatrix(s)
	return Piece{
		Shape:  s,
		Matrix: m,
		X:      boardWidth/2 - len(m)/2,
		Y:      spawnY,
	}
}

// SpawnRandom picks a shape uniformly and places it at the spawn position.
func SpawnRandom(rng *rand.Rand, boardWidth, spawnY int) Piece {
	return NewPiece(Shape(rng.Intn(ShapeCount)), boardWidth, spawnY)
}

// Clone returns a copy that shares no matrix storage with p.
func (p Piece) Clone() Piece {
	p.Matrix = p.Matrix.Clone()
	return p
}

// Cells calls fn with the board coordinates and value of every filled cell.
func (p Piece) Cells(fn func(x, y int, v Cell)) {
	for y, row := range p.Matrix {
		for x, v := range row {
			if v != Empty {
				fn(p.X+x, p.Y+y, v)
			}
		}
	}
}

// Top returns the board row of the highest filled cell.
func (p Piece) Top() int {
	top := p.Y + len(p.Matrix)
	p.Cells(func(_, y int, _ Cell) { top = min(top, y) })
	return top
}

// Bottom returns the board row of the lowest filled cell.
func (p Piece) Bottom() int {
	bottom := p.Y - 1
	p.Cells(func(_, y int, _ Cell) { bottom = max(bottom, y) })
	return bottom
}

// CellColor maps a cell value to a screen color.
func CellColor(v Cell) core.Color {
	switch v {
	case 1:
		return core.ColorPink
	case 2:
		return core.ColorBrightCyan
	case 3:
		return core.ColorBrightGreen
	case 4:
		return core.ColorBrightMagenta
	case 5:
		return core.ColorOrange
	case 6:
		return core.ColorBrightYellow
	case 7:
		return core.ColorBrightBlue
	case Mystery:
		return core.ColorMagenta
	default:
		return core.ColorDefault
	}
}
