package universe

import "fmt"

//Cell is the state of a cell in the classic (binary) game
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//toggle flips Dead and Alive
func (c Cell) toggle() Cell {
	if c == Alive {
		return Dead
	}
	return Alive
}

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

//Species is the state of a cell in the food chain game
//Red eats Green, Green eats Blue, Blue eats Red
type Species uint8

const (
	Empty Species = iota
	Red
	Green
	Blue
)

var (
	speciesNames = [...]string{"Empty", "Red", "Green", "Blue"}

	//foodTable and foeTable are indexed by Species, Empty has no entry
	foodTable = [...]Species{Empty, Green, Blue, Red}
	foeTable  = [...]Species{Empty, Blue, Red, Green}

	//species lists the living species in enumeration order
	species = [...]Species{Red, Green, Blue}
)

//Alive reports whether the species is a living one
func (s Species) Alive() bool {
	return s >= Red && s <= Blue
}

//Food returns the species s preys on
func (s Species) Food() (Species, error) {
	if !s.Alive() {
		return Empty, fmt.Errorf("food of %v: %w", s, ErrInvalidOperand)
	}
	return foodTable[s], nil
}

//Foe returns the species that preys on s
func (s Species) Foe() (Species, error) {
	if !s.Alive() {
		return Empty, fmt.Errorf("foe of %v: %w", s, ErrInvalidOperand)
	}
	return foeTable[s], nil
}

//eats is the total form of Food used inside the engine where s is known to be alive
func (s Species) eats(prey Species) bool {
	return s.Alive() && foodTable[s] == prey
}

//next cycles Empty -> Red -> Green -> Blue -> Empty
func (s Species) next() Species {
	if s >= Blue {
		return Empty
	}
	return s + 1
}

func (s Species) String() string {
	if int(s) < len(speciesNames) {
		return speciesNames[s]
	}
	return fmt.Sprintf("Species(%d)", uint8(s))
}
