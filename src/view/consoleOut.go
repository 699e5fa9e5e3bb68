package view

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifechain/src/universe"
)

//ConsoleOut is the batch mode viewer, it prints the configuration and the progress of the run
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	startTime time.Time
	every     int
	finished  bool
}

//NewConsoleOut creates the viewer printing to stdout every 10 iterations
func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout, 10)
}

//NewConsoleOutTo creates the viewer printing to w every `every` iterations
func NewConsoleOutTo(w io.Writer, every int) *ConsoleOut {
	if every <= 0 {
		every = 1
	}
	return &ConsoleOut{w: w, every: every}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		if c.finished {
			return
		}
		c.finished = true
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		for k, v := range st.Population {
			resultData["Population "+k] = v
		}
		_, _ = fmt.Fprintln(c.w, aurora.Red("\nFinished:").String())
		c.printHashData(resultData)
	} else if st.RunningMode == universe.RunningStateRun {
		c.finished = false
		if st.IterationNum%c.every == 0 {
			_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", st.IterationNum, st.LiveCells)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	_, _ = fmt.Fprintln(c.w, aurora.Green("Running configuration:").String())
	_, _ = fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	_, _ = fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	_, _ = fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
