package universe

import (
	"fmt"
	"math"
)

//Coord addresses a cell by row and column
type Coord struct {
	Row int
	Col int
}

//Grid owns the cell buffers of the universe in row-major order
//buffers[active] is the current generation, the other slot is the scratch buffer
//of the double buffered engines and stays nil until the first tick needs it
type Grid[C ~uint8] struct {
	width   int
	height  int
	buffers [2][]C
	active  int
}

//View is a read-only window on the current generation
//it is invalidated by any subsequent Tick, Resize or Clear call
type View[C ~uint8] struct {
	cells []C
}

//Len returns the number of cells (width*height)
func (v View[C]) Len() int { return len(v.cells) }

//At returns the cell at linear index i
func (v View[C]) At(i int) C { return v.cells[i] }

//Copy returns an owned copy of the cells
func (v View[C]) Copy() []C {
	c := make([]C, len(v.cells))
	copy(c, v.cells)
	return c
}

//NewGrid creates the grid with all cells at their zero (dead) state
func NewGrid[C ~uint8](width int, height int) (*Grid[C], error) {
	g := &Grid[C]{}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

//checkDimension validates that width x height is a non-empty, addressable grid
func checkDimension(width int, height int) error {
	if width <= 0 || height <= 0 || uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 || width > math.MaxInt/height {
		return fmt.Errorf("%v x %v: %w", width, height, ErrInvalidDimension)
	}
	return nil
}

//Resize replaces the buffers, every cell is reset to dead
func (g *Grid[C]) Resize(width int, height int) error {
	if err := checkDimension(width, height); err != nil {
		return err
	}
	g.width = width
	g.height = height
	g.buffers[0] = make([]C, width*height)
	g.buffers[1] = nil
	g.active = 0
	return nil
}

func (g *Grid[C]) Width() int { return g.width }

func (g *Grid[C]) Height() int { return g.height }

//Index translates row, col to the linear index without wrapping
func (g *Grid[C]) Index(row int, col int) (int, error) {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0, fmt.Errorf("(%v,%v) in %v x %v grid: %w", row, col, g.width, g.height, ErrIndexOutOfRange)
	}
	return g.index(row, col), nil
}

func (g *Grid[C]) index(row int, col int) int {
	return row*g.width + col
}

//Cells returns the read-only view of the current generation
func (g *Grid[C]) Cells() View[C] {
	return View[C]{cells: g.buffers[g.active]}
}

//Clear sets every cell of the current generation to dead
func (g *Grid[C]) Clear() {
	clear(g.buffers[g.active])
}

//current returns the writable current generation
func (g *Grid[C]) current() []C {
	return g.buffers[g.active]
}

//scratch returns the inactive buffer, allocating it on first use
func (g *Grid[C]) scratch() []C {
	i := 1 - g.active
	if len(g.buffers[i]) != g.width*g.height {
		g.buffers[i] = make([]C, g.width*g.height)
	}
	return g.buffers[i]
}

//flip makes the scratch buffer current
func (g *Grid[C]) flip() {
	g.active = 1 - g.active
}

//replace installs next as the current generation
func (g *Grid[C]) replace(next []C) {
	g.buffers[g.active] = next
}

//validate checks all coordinates before anything is written
func (g *Grid[C]) validate(coords []Coord) error {
	for _, c := range coords {
		if _, err := g.Index(c.Row, c.Col); err != nil {
			return err
		}
	}
	return nil
}
