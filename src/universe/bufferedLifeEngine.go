package universe

/*
	Game of Life engine with two fixed buffers
	Tick writes the next generation into the inactive buffer and flips the active one,
	nothing is allocated after the first tick at the cost of double memory
*/
type BufferedLifeEngine struct {
	*LifeEngine
}

func NewBufferedLifeEngine(width int, height int) (*BufferedLifeEngine, error) {
	le, err := NewLifeEngine(width, height)
	if err != nil {
		return nil, err
	}
	return &BufferedLifeEngine{LifeEngine: le}, nil
}

func (e *BufferedLifeEngine) Name() string { return "doubleBuff" }

func (e *BufferedLifeEngine) Tick() (liveCells int, changed bool) {
	liveCells, changed = e.nextGeneration(e.grid.scratch())
	e.grid.flip()
	return
}
