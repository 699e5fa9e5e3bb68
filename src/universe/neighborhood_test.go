package universe

import (
	"slices"
	"testing"
)

func TestNeighborsWrap(t *testing.T) {
	g, _ := NewGrid[Cell](4, 3)
	tests := []struct {
		row, col int
		want     [8]int
	}{
		{0, 0, [8]int{11, 8, 9, 3, 1, 7, 4, 5}},
		{2, 3, [8]int{6, 7, 4, 10, 8, 2, 3, 0}},
		{1, 1, [8]int{0, 1, 2, 4, 6, 8, 9, 10}},
	}
	for _, tt := range tests {
		got, count := g.neighbors(tt.row, tt.col)
		if count != 8 || got != tt.want {
			t.Errorf("neighbors(%v, %v) = %v (%v), want %v", tt.row, tt.col, got[:count], count, tt.want)
		}
	}
}

func TestNeighborsDegenerateTorus(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		row, col      int
		want          []int
	}{
		{"one column", 1, 5, 2, 0, []int{1, 1, 1, 3, 3, 3}},
		{"one column top edge", 1, 5, 0, 0, []int{4, 4, 4, 1, 1, 1}},
		{"one row", 5, 1, 0, 2, []int{1, 3, 1, 3, 1, 3}},
		{"one row left edge", 5, 1, 0, 0, []int{4, 1, 4, 1, 4, 1}},
		{"single cell", 1, 1, 0, 0, []int{}},
		{"one column of two", 1, 2, 0, 0, []int{1, 1, 1, 1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid[Cell](tt.width, tt.height)
			if err != nil {
				t.Fatal(err)
			}
			n, count := g.neighbors(tt.row, tt.col)
			if !slices.Equal(n[:count], tt.want) {
				t.Errorf("neighbors(%v, %v) = %v, want %v", tt.row, tt.col, n[:count], tt.want)
			}
			center := g.index(tt.row, tt.col)
			if slices.Contains(n[:count], center) {
				t.Errorf("neighbors(%v, %v) contains the cell itself", tt.row, tt.col)
			}
		})
	}
}

func TestLiveNeighborCountDegenerateTorus(t *testing.T) {
	g, _ := NewGrid[Cell](1, 5)
	g.current()[g.index(2, 0)] = Alive
	if got := liveNeighborCount(g, 2, 0); got != 0 {
		t.Errorf("liveNeighborCount(2, 0) = %v, want 0", got)
	}
	if got := liveNeighborCount(g, 1, 0); got != 3 {
		t.Errorf("liveNeighborCount(1, 0) = %v, want 3", got)
	}

	s, _ := NewGrid[Species](5, 1)
	s.current()[s.index(0, 2)] = Red
	if got, want := foodChainTally(s, 0, 2), (Tally{Species: Red}); got != want {
		t.Errorf("foodChainTally(0, 2) = %+v, want %+v", got, want)
	}
}

func TestWrap(t *testing.T) {
	if got := wrapBefore(0, 7); got != 6 {
		t.Errorf("wrapBefore(0, 7) = %v", got)
	}
	if got := wrapAfter(6, 7); got != 0 {
		t.Errorf("wrapAfter(6, 7) = %v", got)
	}
	if got := wrapBefore(3, 7); got != 2 {
		t.Errorf("wrapBefore(3, 7) = %v", got)
	}
	if got := wrapAfter(3, 7); got != 4 {
		t.Errorf("wrapAfter(3, 7) = %v", got)
	}
}

func TestLiveNeighborCountAcrossEdges(t *testing.T) {
	g, _ := NewGrid[Cell](5, 5)
	for _, c := range []Coord{{4, 4}, {0, 4}, {4, 0}, {1, 1}} {
		g.current()[g.index(c.Row, c.Col)] = Alive
	}
	if got := liveNeighborCount(g, 0, 0); got != 4 {
		t.Errorf("liveNeighborCount(0, 0) = %v, want 4", got)
	}
	if got := liveNeighborCount(g, 2, 2); got != 1 {
		t.Errorf("liveNeighborCount(2, 2) = %v, want 1", got)
	}
}

func neighborhood(s ...Species) []Species {
	return s
}

func TestResolveFoodChain(t *testing.T) {
	tests := []struct {
		name      string
		center    Species
		neighbors []Species
		want      Tally
	}{
		{"no neighbours", Empty, neighborhood(), Tally{Species: Empty}},
		{"three of a kind", Empty, neighborhood(Red, Red, Red), Tally{Red, 3, 0}},
		{"predator elected", Empty, neighborhood(Red, Green, Red), Tally{Red, 2, 1}},
		{"predator of a tied species", Empty, neighborhood(Blue, Blue, Red, Red), Tally{Blue, 2, 2}},
		{"single pass cycle, birth", Empty, neighborhood(Red, Red, Green, Green, Blue, Blue), Tally{Blue, 2, 2}},
		{"single pass cycle, fed red", Red, neighborhood(Red, Red, Green, Green, Blue, Blue), Tally{Red, 0, 2}},
		{"single pass cycle, eaten green", Green, neighborhood(Red, Red, Green, Green, Blue, Blue), Tally{Green, 0, 0}},
		{"isolated living cell", Blue, neighborhood(Red), Tally{Species: Blue}},
		{"prey partly eaten", Green, neighborhood(Green, Green, Green, Red), Tally{Green, 2, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveFoodChain(tt.center, tt.neighbors); got != tt.want {
				t.Errorf("resolveFoodChain(%v, %v) = %+v, want %+v", tt.center, tt.neighbors, got, tt.want)
			}
		})
	}
}

func TestFoodChainTallyOnGrid(t *testing.T) {
	g, _ := NewGrid[Species](5, 5)
	g.current()[g.index(4, 4)] = Red
	g.current()[g.index(4, 0)] = Red
	g.current()[g.index(0, 4)] = Green
	got := foodChainTally(g, 0, 0)
	want := Tally{Red, 2, 1}
	if got != want {
		t.Errorf("foodChainTally(0, 0) = %+v, want %+v", got, want)
	}
}
