package universe

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"sync"
	"time"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            uint64                 //seed of the random settling, 0 seeds from the clock
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	Population    map[string]int //live cells per state name
	IterationTime time.Duration
}

//LogValue implements slog.LogValuer
func (s Status) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("iteration", s.IterationNum),
		slog.String("mode", s.RunningMode.String()),
		slog.Int("live", s.LiveCells),
		slog.Duration("iteration_time", s.IterationTime),
	}
	names := make([]string, 0, len(s.Population))
	for k := range s.Population {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		attrs = append(attrs, slog.Int(k, s.Population[k]))
	}
	return slog.GroupValue(attrs...)
}

func (s Status) clone() Status {
	c := s
	if s.Population != nil {
		c.Population = make(map[string]int, len(s.Population))
		for k, v := range s.Population {
			c.Population[k] = v
		}
	}
	return c
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates []Coord //cells to settle
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual   = RunningState(0x0)
	RunningStateStep     = RunningState(0x1)
	RunningStateRun      = RunningState(0x2)
	RunningStateFinished = RunningState(0x3)
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "run"
	case RunningStateFinished:
		return "finished"
	}
	return fmt.Sprintf("RunningState(%d)", int(s))
}

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}

//BaseUniverse drives an Engine
//implements Universe interface
//the engine is owned by the main loop goroutine, every command that changes the
//generation is executed there or under the engine lock, so an Engine never sees concurrent calls
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	engine struct {
		Engine
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
	rng       *rand.Rand
	log       *slog.Logger
}

//NewBaseUniverse creates the BaseUniverse instance around the engine
//the engine dimensions take precedence over o.Width and o.Height
func NewBaseUniverse(e Engine, o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	opts.Width, opts.Height = e.Width(), e.Height()
	opts.Advanced = make(map[string]interface{})
	for k, v := range o.Advanced {
		opts.Advanced[k] = v
	}
	opts.Advanced["engine"] = e.Name()

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	u := BaseUniverse{
		options:   opts,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
		rng:       rand.New(rand.NewPCG(seed, 0)),
		log:       slog.Default().With("engine", e.Name()),
	}
	u.engine.Engine = e
	u.state.LiveCells = e.LiveCells()
	u.state.Population = e.Population()

	u.refreshView()
	go u.mainLoop()
	return &u
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.state.Lock()
	u.templates[tmpl.Name] = tmpl
	u.state.Unlock()
}

//Settle settles the universe with data
//nothing is settled if any coordinate is outside the area
func (u *BaseUniverse) Settle(coords []Coord) error {
	u.engine.Lock()
	err := u.engine.SetCells(coords)
	u.engine.Unlock()
	if err != nil {
		return fmt.Errorf("settle: %w", err)
	}
	u.refreshCounters()
	u.refreshView()
	return nil
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) error {
	u.state.Lock()
	tmpl, ok := u.templates[name]
	u.state.Unlock()
	if !ok {
		return fmt.Errorf("template %q: %w", name, ErrUnknownTemplate)
	}
	if err := u.Settle(tmpl.Coordinates); err != nil {
		return fmt.Errorf("template %q: %w", name, err)
	}
	return nil
}

//SettleWithRandomData populates the universe with random data, returns immediately
//it is ignored while the simulation is running
func (u *BaseUniverse) SettleWithRandomData() {
	u.settleIdle(func(e Engine) { e.Randomize(u.rng) })
}

//SettlePattern populates the universe with the engine's fixed pattern, returns immediately
//it is ignored while the simulation is running
func (u *BaseUniverse) SettlePattern() {
	u.settleIdle(func(e Engine) { e.SetPattern() })
}

func (u *BaseUniverse) settleIdle(fill func(e Engine)) {
	u.exec(func() {
		if m := u.runningMode(); m != RunningStateManual && m != RunningStateFinished {
			return
		}
		u.engine.Lock()
		fill(u.engine.Engine)
		u.engine.Unlock()
		u.refreshCounters()
		u.refreshView()
	})
}

//InverseCell toggles the cell state at row, col
func (u *BaseUniverse) InverseCell(row int, col int) error {
	u.engine.Lock()
	err := u.engine.ToggleCell(row, col)
	u.engine.Unlock()
	if err != nil {
		return fmt.Errorf("inverse cell: %w", err)
	}
	u.refreshCounters()
	u.refreshView()
	return nil
}

//CellStats describes the cell at row, col and its neighbourhood
func (u *BaseUniverse) CellStats(row int, col int) (string, error) {
	u.engine.Lock()
	defer u.engine.Unlock()
	return u.engine.CellStats(row, col)
}

//Resize changes the universe dimensions, all cells die and the counters are reset
func (u *BaseUniverse) Resize(width int, height int) error {
	u.engine.Lock()
	err := u.engine.Resize(width, height)
	u.engine.Unlock()
	if err != nil {
		return fmt.Errorf("resize: %w", err)
	}
	u.state.Lock()
	u.options.Width, u.options.Height = width, height
	u.state.IterationNum = 0
	u.state.IterationTime = 0
	u.state.Unlock()
	u.refreshCounters()
	u.refreshView()
	return nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	u.state.Lock()
	u.views = append(u.views, v)
	u.state.Unlock()
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status.clone()
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	u.state.Lock()
	defer u.state.Unlock()
	return u.options
}

//Area returns a copy of the current universe area (field where cells is living)
func (u *BaseUniverse) Area() Area {
	u.engine.Lock()
	defer u.engine.Unlock()
	return u.engine.Area()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.exec(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.exec(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.exec(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.exec(u.clear)
}

//Close stops the main loop and the running simulation, returns immediately
//the stateCh is owned by the caller and is not closed
func (u *BaseUniverse) Close() {
	u.closeOnce.Do(func() { close(u.closeCh) })
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//exec hands the command to the main loop, returns false if the universe is closed
func (u *BaseUniverse) exec(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.closeCh:
		return false
	}
}

func (u *BaseUniverse) runningMode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//refreshCounters recounts the live cells after the area was changed outside of a step
func (u *BaseUniverse) refreshCounters() {
	u.engine.Lock()
	live, population := u.engine.LiveCells(), u.engine.Population()
	u.engine.Unlock()
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Population = population
	u.state.Unlock()
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status.clone()
	u.state.Unlock()
	if u.stateCh != nil {
		select {
		case u.stateCh <- st:
		case <-u.closeCh:
		}
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	if u.runningMode() == RunningStateRun {
		return
	}
	u.switchRunningState(RunningStateRun)
	u.log.Debug("simulation started", "options", u.Options())
	go func() {
		skipped := 0
		done := make(chan struct{}, 1)
		for {
			mode := u.runningMode()
			if mode != RunningStateRun && mode != RunningStateStep {
				return
			}
			if skipped > u.options.MaxSkippedTicks {
				u.log.Warn("simulation is too slow, too many ticks skipped", "skipped", skipped)
				u.exec(func() { u.switchRunningState(RunningStateFinished) })
				return
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				if !u.exec(func() {
					u.step()
					done <- struct{}{}
				}) {
					return
				}
				select {
				case <-done:
				case <-u.closeCh:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				select {
				case <-time.After(u.options.Interval):
				case <-u.closeCh:
					return
				}
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.runningMode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (u *BaseUniverse) step() {
	finished := false
	rm := u.runningMode()
	defer func() {
		if finished {
			u.switchRunningState(RunningStateFinished)
		} else {
			u.switchRunningState(rm)
		}
		u.refreshView()
	}()

	u.state.Lock()
	iteration := u.state.IterationNum
	u.state.Unlock()
	if maxIter := u.options.MaxSteps; maxIter != 0 && iteration >= maxIter {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)

	start := time.Now()
	u.engine.Lock()
	liveCells, changed := u.engine.Tick()
	population := u.engine.Population()
	u.engine.Unlock()

	u.state.Lock()
	u.state.IterationNum++
	u.state.LiveCells = liveCells
	u.state.Population = population
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()

	if liveCells == 0 || !changed {
		finished = true
	}
}

//clear clears the unvierse data, reset all counters
func (u *BaseUniverse) clear() {
	u.engine.Lock()
	u.engine.Clear()
	population := u.engine.Population()
	u.engine.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.Population = population
	u.state.IterationTime = 0
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()
}

//refreshView calls Refresh event for all registered views
func (u *BaseUniverse) refreshView() {
	u.state.Lock()
	views := append([]Viewer(nil), u.views...)
	u.state.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
