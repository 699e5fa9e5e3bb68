package telemetry

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lifechain/src/universe"
)

func status(iteration int, mode universe.RunningState, live int) universe.Status {
	return universe.Status{
		IterationNum:  iteration,
		RunningMode:   mode,
		LiveCells:     live,
		Population:    map[string]int{"Red": live, "Blue": 0, "Green": 0},
		IterationTime: 1500 * time.Microsecond,
	}
}

func TestRecorderWritesOneRowPerGeneration(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	statuses := []universe.Status{
		status(0, universe.RunningStateRun, 4),
		status(0, universe.RunningStateStep, 4),
		status(1, universe.RunningStateRun, 5),
		status(1, universe.RunningStateStep, 5),
		status(2, universe.RunningStateFinished, 0),
	}
	for _, st := range statuses {
		if err := r.Observe(st); err != nil {
			t.Fatal(err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %v lines:\n%s", len(lines), buf.String())
	}
	if lines[0] != "iteration,mode,live_cells,alive,red,green,blue,iteration_us" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "1,run,5,0,5,0,0,1500" {
		t.Errorf("row = %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "2,finished,0,") {
		t.Errorf("last row = %q", lines[3])
	}
}

func TestSummary(t *testing.T) {
	r := NewRecorder(nil)
	if s := r.Summary(); s.Generations != 0 || s.Mean != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
	for i, live := range []int{5, 1, 4, 2, 3} {
		_ = r.Observe(status(i, universe.RunningStateRun, live))
	}
	s := r.Summary()
	if s.Generations != 5 {
		t.Errorf("generations = %v", s.Generations)
	}
	if math.Abs(s.Mean-3) > 1e-9 {
		t.Errorf("mean = %v", s.Mean)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("std = %v", s.StdDev)
	}
	if s.P10 != 1 || s.P50 != 3 || s.P90 != 5 {
		t.Errorf("percentiles = %v %v %v", s.P10, s.P50, s.P90)
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "stats.csv")
	r, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Observe(status(0, universe.RunningStateRun, 1)); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "iteration,") {
		t.Errorf("file = %q", data)
	}
}
