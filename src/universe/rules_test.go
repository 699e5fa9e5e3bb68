package universe

import "testing"

func TestLifeRule(t *testing.T) {
	tests := []struct {
		cell Cell
		live int
		want Cell
	}{
		{Alive, 0, Dead},
		{Alive, 1, Dead},
		{Alive, 2, Alive},
		{Alive, 3, Alive},
		{Alive, 4, Dead},
		{Alive, 8, Dead},
		{Dead, 2, Dead},
		{Dead, 3, Alive},
		{Dead, 4, Dead},
	}
	for _, tt := range tests {
		if got := lifeRule(tt.cell, tt.live); got != tt.want {
			t.Errorf("lifeRule(%v, %v) = %v, want %v", tt.cell, tt.live, got, tt.want)
		}
	}
}

func TestFoodChainRule(t *testing.T) {
	tests := []struct {
		name string
		cell Species
		t    Tally
		want Species
	}{
		{"birth of three", Empty, Tally{Green, 3, 0}, Green},
		{"birth with predation", Empty, Tally{Blue, 1, 1}, Blue},
		{"no birth of two", Empty, Tally{Red, 2, 0}, Empty},
		{"no birth of four", Empty, Tally{Red, 4, 0}, Empty},
		{"nothing around", Empty, Tally{Species: Empty}, Empty},
		{"starvation", Red, Tally{Red, 1, 0}, Empty},
		{"starvation before fed survival", Green, Tally{Green, 0, 1}, Empty},
		{"survival of two", Red, Tally{Red, 2, 0}, Red},
		{"survival of three", Red, Tally{Red, 3, 5}, Red},
		{"fed survival", Red, Tally{Red, 0, 2}, Red},
		{"fed survival with one friend", Blue, Tally{Blue, 1, 1}, Blue},
		{"overcrowding", Red, Tally{Red, 4, 0}, Empty},
		{"fed cell resists overcrowding", Red, Tally{Red, 5, 1}, Red},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := foodChainRule(tt.cell, tt.t); got != tt.want {
				t.Errorf("foodChainRule(%v, %+v) = %v, want %v", tt.cell, tt.t, got, tt.want)
			}
		})
	}
}
