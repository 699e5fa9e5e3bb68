package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"lifechain/src/universe"
)

//Record is one CSV row, written for every computed generation
type Record struct {
	Iteration       int    `csv:"iteration"`
	Mode            string `csv:"mode"`
	LiveCells       int    `csv:"live_cells"`
	Alive           int    `csv:"alive"`
	Red             int    `csv:"red"`
	Green           int    `csv:"green"`
	Blue            int    `csv:"blue"`
	IterationMicros int64  `csv:"iteration_us"`
}

//NewRecord flattens a universe status
func NewRecord(st universe.Status) Record {
	return Record{
		Iteration:       st.IterationNum,
		Mode:            st.RunningMode.String(),
		LiveCells:       st.LiveCells,
		Alive:           st.Population[universe.Alive.String()],
		Red:             st.Population[universe.Red.String()],
		Green:           st.Population[universe.Green.String()],
		Blue:            st.Population[universe.Blue.String()],
		IterationMicros: st.IterationTime.Microseconds(),
	}
}

//Recorder collects the statuses of a run and optionally streams them as CSV
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	lastIteration int
	live          []float64
}

//NewRecorder creates a recorder writing CSV to w; w may be nil to only
//collect the summary
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, lastIteration: -1}
}

//Create creates the CSV file at path (and its directory)
func Create(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	r := NewRecorder(f)
	r.closer = f
	return r, nil
}

//Observe records st if it is the first status seen for a new generation
//the universe reports each generation several times (step, then the restored
//mode); only the first report after the iteration counter moved is kept
func (r *Recorder) Observe(st universe.Status) error {
	if st.IterationNum == r.lastIteration {
		return nil
	}
	r.lastIteration = st.IterationNum
	r.live = append(r.live, float64(st.LiveCells))
	if r.w == nil {
		return nil
	}

	records := []Record{NewRecord(st)}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing telemetry: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

//Close closes the file opened by Create
func (r *Recorder) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

//Summary describes the live cell counts over a run
type Summary struct {
	Generations int
	Mean        float64
	StdDev      float64
	P10         float64
	P50         float64
	P90         float64
}

//Summary computes the statistics of the recorded live cell counts
func (r *Recorder) Summary() Summary {
	s := Summary{Generations: len(r.live)}
	if len(r.live) == 0 {
		return s
	}
	s.Mean = stat.Mean(r.live, nil)
	if len(r.live) > 1 {
		s.StdDev = stat.StdDev(r.live, nil)
	}
	sorted := make([]float64, len(r.live))
	copy(sorted, r.live)
	sort.Float64s(sorted)
	s.P10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	s.P50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	s.P90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return s
}

//LogValue implements slog.LogValuer for structured logging
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generations", s.Generations),
		slog.Float64("live_mean", s.Mean),
		slog.Float64("live_std", s.StdDev),
		slog.Float64("live_p10", s.P10),
		slog.Float64("live_p50", s.P50),
		slog.Float64("live_p90", s.P90),
	)
}
