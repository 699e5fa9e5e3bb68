package universe

import (
	"fmt"
	"math/rand/v2"
)

var lifeLegend = []string{Dead.String(), Alive.String()}

/*
	Classic Game of Life engine
	Tick allocates a new buffer with full size on each call, all cells state is calculated
	to the new buffer and then it replaces the current one
*/
type LifeEngine struct {
	grid *Grid[Cell]
}

//NewLifeEngine creates the engine with all cells dead
func NewLifeEngine(width int, height int) (*LifeEngine, error) {
	g, err := NewGrid[Cell](width, height)
	if err != nil {
		return nil, err
	}
	return &LifeEngine{grid: g}, nil
}

func (e *LifeEngine) Name() string { return "life" }

func (e *LifeEngine) Width() int { return e.grid.Width() }

func (e *LifeEngine) Height() int { return e.grid.Height() }

//Cells returns the read-only view of the current generation
func (e *LifeEngine) Cells() View[Cell] { return e.grid.Cells() }

func (e *LifeEngine) Tick() (liveCells int, changed bool) {
	next := make([]Cell, e.grid.Width()*e.grid.Height())
	liveCells, changed = e.nextGeneration(next)
	e.grid.replace(next)
	return
}

//nextGeneration walks the current generation and writes every next state to next
func (e *LifeEngine) nextGeneration(next []Cell) (liveCells int, changed bool) {
	g := e.grid
	cur := g.current()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			idx := g.index(row, col)
			nextState := lifeRule(cur[idx], liveNeighborCount(g, row, col))
			if nextState == Alive {
				liveCells++
			}
			changed = changed || nextState != cur[idx]
			next[idx] = nextState
		}
	}
	return
}

func (e *LifeEngine) Resize(width int, height int) error {
	return e.grid.Resize(width, height)
}

func (e *LifeEngine) Clear() { e.grid.Clear() }

func (e *LifeEngine) ToggleCell(row int, col int) error {
	idx, err := e.grid.Index(row, col)
	if err != nil {
		return err
	}
	cells := e.grid.current()
	cells[idx] = cells[idx].toggle()
	return nil
}

//SetCells makes every addressed cell Alive, nothing is written if any coordinate is out of range
func (e *LifeEngine) SetCells(coords []Coord) error {
	if err := e.grid.validate(coords); err != nil {
		return err
	}
	cells := e.grid.current()
	for _, c := range coords {
		cells[e.grid.index(c.Row, c.Col)] = Alive
	}
	return nil
}

//Randomize makes each cell alive with probability 0.5
func (e *LifeEngine) Randomize(r *rand.Rand) {
	cells := e.grid.current()
	for i := range cells {
		cells[i] = Cell(r.IntN(2))
	}
}

//SetPattern sets the fixed benchmark pattern: alive where index%3==0 or index%5==0
func (e *LifeEngine) SetPattern() {
	cells := e.grid.current()
	for i := range cells {
		if i%3 == 0 || i%5 == 0 {
			cells[i] = Alive
		} else {
			cells[i] = Dead
		}
	}
}

func (e *LifeEngine) Index(row int, col int) (int, error) {
	return e.grid.Index(row, col)
}

func (e *LifeEngine) CellStats(row int, col int) (string, error) {
	idx, err := e.grid.Index(row, col)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%v,%v) %v - Neighbors: %v", row, col, e.grid.current()[idx], liveNeighborCount(e.grid, row, col)), nil
}

func (e *LifeEngine) LiveCells() int {
	live := 0
	for _, c := range e.grid.current() {
		if c == Alive {
			live++
		}
	}
	return live
}

func (e *LifeEngine) Population() map[string]int {
	return map[string]int{Alive.String(): e.LiveCells()}
}

func (e *LifeEngine) Area() Area {
	return snapshot(e.grid, lifeLegend)
}
