package universe

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
)

//Engine is the synchronous simulation core: a grid plus a transition rule
//Engines are not safe for concurrent use, BaseUniverse serializes the access
type Engine interface {
	Name() string
	Width() int
	Height() int
	//Tick computes the next generation from the current one and makes it current
	Tick() (liveCells int, changed bool)
	Resize(width int, height int) error
	Clear()
	ToggleCell(row int, col int) error
	SetCells(coords []Coord) error
	Randomize(r *rand.Rand)
	SetPattern()
	Index(row int, col int) (int, error)
	CellStats(row int, col int) (string, error)
	LiveCells() int
	//Population counts the live cells per state name
	Population() map[string]int
	//Area returns an owned copy of the current generation
	Area() Area
}

//Area is a snapshot of the universe field
//Entities[row][col] holds the numeric cell state, Legend names each state value
type Area struct {
	Width    int
	Height   int
	Entities [][]uint8
	Legend   []string
}

//EngineFactory creates an engine with the given dimensions
type EngineFactory func(width int, height int) (Engine, error)

var engines = map[string]EngineFactory{
	"life": func(width int, height int) (Engine, error) {
		return NewLifeEngine(width, height)
	},
	"doubleBuff": func(width int, height int) (Engine, error) {
		return NewBufferedLifeEngine(width, height)
	},
	"foodChain": func(width int, height int) (Engine, error) {
		return NewFoodChainEngine(width, height)
	},
}

//NewEngine creates the registered engine called name
func NewEngine(name string, width int, height int) (Engine, error) {
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%q (known: %s): %w", name, strings.Join(EngineNames(), ", "), ErrUnknownEngine)
	}
	return f(width, height)
}

//EngineNames returns the registered engine names sorted
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//createArea allocates the area with row slices sharing one backing buffer
func createArea(width int, height int) Area {
	area := Area{Width: width, Height: height, Entities: make([][]uint8, height)}
	b := make([]uint8, width*height)
	for i := range area.Entities {
		start := width * i
		area.Entities[i] = b[start : start+width : start+width]
	}
	return area
}

//snapshot copies the current generation of g into a new Area
func snapshot[C ~uint8](g *Grid[C], legend []string) Area {
	a := createArea(g.Width(), g.Height())
	cells := g.current()
	for row := range a.Entities {
		for col := range a.Entities[row] {
			a.Entities[row][col] = uint8(cells[g.index(row, col)])
		}
	}
	a.Legend = legend
	return a
}
