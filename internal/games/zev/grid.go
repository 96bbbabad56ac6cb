package zev

// Cell is the value of one board or piece cell.
// 0 is empty, 1-7 are piece colors and 8 marks a mystery block.
type Cell uint8

const (
	Empty   Cell = 0
	Mystery Cell = 8
)

// Grid is the fixed-size playfield. Rows are indexed top to bottom.
// Every row always holds exactly Width cells.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid creates an empty grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.Reset()
	return g
}

// Reset empties every cell.
func (g *Grid) Reset() {
	g.cells = make([][]Cell, g.height)
	for y := range g.cells {
		g.cells[y] = make([]Cell, g.width)
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a board cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or Empty when out of range.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y][x]
}

// Collides reports whether the piece, shifted by (dx, dy) and using candidate
// as its matrix (or its own when candidate is nil), would leave the board
// horizontally, reach past the bottom, or overlap a filled cell.
// Cells above the board only collide with the side walls.
func (g *Grid) Collides(p Piece, dx, dy int, candidate Matrix) bool {
	m := candidate
	if m == nil {
		m = p.Matrix
	}
	for y, row := range m {
		for x, v := range row {
			if v == Empty {
				continue
			}
			bx, by := p.X+x+dx, p.Y+y+dy
			if bx < 0 || bx >= g.width || by >= g.height {
				return true
			}
			if by >= 0 && g.cells[by][bx] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge writes the piece into the board. Cells still above the board are dropped.
func (g *Grid) Merge(p Piece) {
	for y, row := range p.Matrix {
		for x, v := range row {
			if v == Empty {
				continue
			}
			bx, by := p.X+x, p.Y+y
			if g.InBounds(bx, by) {
				g.cells[by][bx] = v
			}
		}
	}
}

// ClearLines removes every complete row, shifting the rows above it down and
// inserting an empty row at the top. fn, if not nil, receives the index and
// contents of each removed row. Returns the number of rows removed.
func (g *Grid) ClearLines(fn func(row int, removed []Cell)) int {
	cleared := 0
	for y := g.height - 1; y >= 0; {
		if !g.full(y) {
			y--
			continue
		}
		removed := g.cells[y]
		if fn != nil {
			fn(y, removed)
		}
		copy(g.cells[1:y+1], g.cells[:y])
		g.cells[0] = make([]Cell, g.width)
		cleared++
		// Row y now holds what was above it; look at it again.
	}
	return cleared
}

func (g *Grid) full(y int) bool {
	for _, v := range g.cells[y] {
		if v == Empty {
			return false
		}
	}
	return true
}

// Mirror reverses every row in place.
func (g *Grid) Mirror() {
	for _, row := range g.cells {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

// Inject sets an empty in-range cell to v. It reports whether the board changed.
func (g *Grid) Inject(x, y int, v Cell) bool {
	if !g.InBounds(x, y) || g.cells[y][x] != Empty || v == Empty {
		return false
	}
	g.cells[y][x] = v
	return true
}

// ClearCell empties an in-range cell. It reports whether the board changed.
func (g *Grid) ClearCell(x, y int) bool {
	if !g.InBounds(x, y) || g.cells[y][x] == Empty {
		return false
	}
	g.cells[y][x] = Empty
	return true
}

// Filled returns the number of non-empty cells.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v != Empty {
				n++
			}
		}
	}
	return n
}

// Snapshot returns a deep copy of the cells.
func (g *Grid) Snapshot() [][]Cell {
	out := make([][]Cell, g.height)
	for y, row := range g.cells {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}
