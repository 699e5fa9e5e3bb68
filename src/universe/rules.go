package universe

//lifeRule is the classic transition for a cell with live neighbours
func lifeRule(c Cell, live int) Cell {
	switch {
	case c == Alive && live < 2:
		return Dead
	case c == Alive && (live == 2 || live == 3):
		return Alive
	case c == Alive && live > 3:
		return Dead
	case c == Dead && live == 3:
		return Alive
	}
	return c
}

//foodChainRule is the transition of the food chain game
//friendliness is t.Population and food is t.Predation
//
//Branch order matters: births are decided first, then starvation
//(friendliness+food < 2) wins over survival, and a fed cell survives
//before overcrowding is considered.
func foodChainRule(s Species, t Tally) Species {
	friendliness, food := t.Population, t.Predation
	if !s.Alive() {
		if friendliness == 3 {
			return t.Species
		}
		if friendliness > 0 && food > 0 {
			return t.Species
		}
	}
	switch {
	case friendliness+food < 2:
		return Empty
	case friendliness == 2 || friendliness == 3:
		return s
	case food > 0:
		return s
	case friendliness > 3:
		return Empty
	}
	return s
}
