package universe

import (
	"fmt"
	"math/rand/v2"
)

var foodChainLegend = speciesNames[:]

/*
	Food chain engine: three species compete on a double buffered grid
	Red eats Green, Green eats Blue, Blue eats Red. The neighbourhood of every
	cell is resolved to a Tally (see resolveFoodChain) and foodChainRule decides
	births, survival and deaths from it.
*/
type FoodChainEngine struct {
	grid *Grid[Species]
}

func NewFoodChainEngine(width int, height int) (*FoodChainEngine, error) {
	g, err := NewGrid[Species](width, height)
	if err != nil {
		return nil, err
	}
	return &FoodChainEngine{grid: g}, nil
}

func (e *FoodChainEngine) Name() string { return "foodChain" }

func (e *FoodChainEngine) Width() int { return e.grid.Width() }

func (e *FoodChainEngine) Height() int { return e.grid.Height() }

//Cells returns the read-only view of the current generation
func (e *FoodChainEngine) Cells() View[Species] { return e.grid.Cells() }

func (e *FoodChainEngine) Tick() (liveCells int, changed bool) {
	g := e.grid
	cur, next := g.current(), g.scratch()
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			idx := g.index(row, col)
			nextState := foodChainRule(cur[idx], foodChainTally(g, row, col))
			if nextState.Alive() {
				liveCells++
			}
			changed = changed || nextState != cur[idx]
			next[idx] = nextState
		}
	}
	g.flip()
	return
}

func (e *FoodChainEngine) Resize(width int, height int) error {
	return e.grid.Resize(width, height)
}

func (e *FoodChainEngine) Clear() { e.grid.Clear() }

//ToggleCell cycles the cell Empty -> Red -> Green -> Blue -> Empty
func (e *FoodChainEngine) ToggleCell(row int, col int) error {
	idx, err := e.grid.Index(row, col)
	if err != nil {
		return err
	}
	cells := e.grid.current()
	cells[idx] = cells[idx].next()
	return nil
}

//SetCells settles Red at every addressed cell, nothing is written if any coordinate is out of range
func (e *FoodChainEngine) SetCells(coords []Coord) error {
	if err := e.grid.validate(coords); err != nil {
		return err
	}
	cells := e.grid.current()
	for _, c := range coords {
		cells[e.grid.index(c.Row, c.Col)] = Red
	}
	return nil
}

//SetSpecies settles s at every addressed cell
func (e *FoodChainEngine) SetSpecies(s Species, coords []Coord) error {
	if int(s) >= len(speciesNames) {
		return fmt.Errorf("settle %v: %w", s, ErrInvalidOperand)
	}
	if err := e.grid.validate(coords); err != nil {
		return err
	}
	cells := e.grid.current()
	for _, c := range coords {
		cells[e.grid.index(c.Row, c.Col)] = s
	}
	return nil
}

//Randomize picks each cell uniformly among Empty, Red, Green and Blue
func (e *FoodChainEngine) Randomize(r *rand.Rand) {
	cells := e.grid.current()
	for i := range cells {
		cells[i] = Species(r.IntN(len(speciesNames)))
	}
}

//SetPattern sets the fixed benchmark pattern:
//Red where index%3==0, otherwise Green where index%5==0, otherwise Blue where index%7==0
func (e *FoodChainEngine) SetPattern() {
	cells := e.grid.current()
	for i := range cells {
		switch {
		case i%3 == 0:
			cells[i] = Red
		case i%5 == 0:
			cells[i] = Green
		case i%7 == 0:
			cells[i] = Blue
		default:
			cells[i] = Empty
		}
	}
}

func (e *FoodChainEngine) Index(row int, col int) (int, error) {
	return e.grid.Index(row, col)
}

func (e *FoodChainEngine) CellStats(row int, col int) (string, error) {
	idx, err := e.grid.Index(row, col)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%v,%v) %v - Neighbors: %v", row, col, e.grid.current()[idx], foodChainTally(e.grid, row, col)), nil
}

func (e *FoodChainEngine) LiveCells() int {
	live := 0
	for _, s := range e.grid.current() {
		if s.Alive() {
			live++
		}
	}
	return live
}

func (e *FoodChainEngine) Population() map[string]int {
	p := make(map[string]int, len(species))
	for _, s := range species {
		p[s.String()] = 0
	}
	for _, s := range e.grid.current() {
		if s.Alive() {
			p[s.String()]++
		}
	}
	return p
}

func (e *FoodChainEngine) Area() Area {
	return snapshot(e.grid, foodChainLegend)
}
