package universe

import (
	"fmt"
	"sort"
)

//wrapBefore returns the toroidal predecessor of i in [0, n)
func wrapBefore(i int, n int) int {
	if i == 0 {
		return n - 1
	}
	return i - 1
}

//wrapAfter returns the toroidal successor of i in [0, n)
func wrapAfter(i int, n int) int {
	if i >= n-1 {
		return 0
	}
	return i + 1
}

//neighbors returns the linear indexes of the toroidal neighbours of (row, col),
//only the first count entries of n are set
//every slot that wraps back onto (row, col) is skipped, so a grid 1 cell wide or
//tall has fewer than 8 neighbours; on a grid 2 cells wide the same cell may
//still fill two slots
func (g *Grid[C]) neighbors(row int, col int) (n [8]int, count int) {
	rows := [3]int{wrapBefore(row, g.height), row, wrapAfter(row, g.height)}
	cols := [3]int{wrapBefore(col, g.width), col, wrapAfter(col, g.width)}
	for _, r := range rows {
		for _, c := range cols {
			if r == row && c == col {
				continue
			}
			n[count] = g.index(r, c)
			count++
		}
	}
	return n, count
}

//liveNeighborCount counts the Alive neighbours of (row, col) in the current generation
func liveNeighborCount(g *Grid[Cell], row int, col int) int {
	cells := g.current()
	n, total := g.neighbors(row, col)
	count := 0
	for _, idx := range n[:total] {
		if cells[idx] == Alive {
			count++
		}
	}
	return count
}

//Tally is the food chain aggregate of a neighbourhood for one species
//Population is what is left of the species among the neighbours after predation,
//Predation is how much of its prey the species has eaten
type Tally struct {
	Species    Species
	Population int
	Predation  int
}

func (t Tally) String() string {
	return fmt.Sprintf("%v population: %v, predation: %v", t.Species, t.Population, t.Predation)
}

//foodChainTally resolves the neighbourhood of (row, col) in the current generation
func foodChainTally(g *Grid[Species], row int, col int) Tally {
	cells := g.current()
	var neighbors [8]Species
	n, total := g.neighbors(row, col)
	for i, idx := range n[:total] {
		neighbors[i] = cells[idx]
	}
	return resolveFoodChain(cells[g.index(row, col)], neighbors[:total])
}

//resolveFoodChain computes the Tally that decides the next state of center
//
//Species absent from the neighbourhood are dropped and the rest are ordered by
//population, ties keep the Red, Green, Blue order. Every predator then eats
//min(predator, prey) of its prey in a single pass over that order, so in a full
//three-way cycle the outcome depends on who is visited first; no fixed point is searched.
//
//A dead center gets the best birth candidate by population+predation, or an
//Empty tally when no neighbour is alive. A living center gets its own species' tally.
func resolveFoodChain(center Species, neighbors []Species) Tally {
	var counts [len(speciesNames)]int
	for _, s := range neighbors {
		if s.Alive() {
			counts[s]++
		}
	}

	tallies := make([]Tally, 0, len(species))
	for _, s := range species {
		if counts[s] > 0 {
			tallies = append(tallies, Tally{Species: s, Population: counts[s]})
		}
	}
	sort.SliceStable(tallies, func(i, j int) bool {
		return tallies[i].Population > tallies[j].Population
	})

	for i := range tallies {
		for j := range tallies {
			if i == j || !tallies[i].Species.eats(tallies[j].Species) {
				continue
			}
			eaten := min(tallies[i].Population, tallies[j].Population)
			tallies[i].Predation += eaten
			tallies[j].Population -= eaten
		}
	}

	if !center.Alive() {
		if len(tallies) == 0 {
			return Tally{Species: Empty}
		}
		sort.SliceStable(tallies, func(i, j int) bool {
			return tallies[i].Population+tallies[i].Predation > tallies[j].Population+tallies[j].Predation
		})
		return tallies[0]
	}

	for _, t := range tallies {
		if t.Species == center {
			return t
		}
	}
	return Tally{Species: center}
}
