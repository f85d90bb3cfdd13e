package series

import (
	"slices"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressUpdate carries the progress of one evaluation from the evaluator
// to the display.
type ProgressUpdate struct {
	// Index identifies the evaluation among concurrent ones.
	Index int
	// Value is the normalized progress, from 0.0 to 1.0.
	Value float64
}

// ProgressReporter is the callback form of progress reporting.
type ProgressReporter func(progress float64)

// ProgressReportThreshold is the minimum change in progress between two
// reports.
const ProgressReportThreshold = 0.01

// termProgress estimates progress as the share of the term budget already
// consumed. Series that converge early jump to 1.0 when they finish.
func termProgress(terms, maxTerms int) float64 {
	if maxTerms <= 0 {
		return 1
	}
	return min(float64(terms)/float64(maxTerms), 1)
}

// ProgressObserver receives the progress of evaluation index.
type ProgressObserver interface {
	Update(index int, progress float64)
}

// ObserverFunc adapts a function to ProgressObserver.
type ObserverFunc func(index int, progress float64)

func (f ObserverFunc) Update(index int, progress float64) { f(index, progress) }

// ProgressSubject fans progress out to its observers, synchronously and in
// registration order. It is safe for concurrent use; a nil subject drops
// everything.
type ProgressSubject struct {
	mu        sync.RWMutex
	nextID    uint64
	observers []registered
}

// registered observers are matched by id on removal; ObserverFunc values
// cannot be compared.
type registered struct {
	id uint64
	ProgressObserver
}

func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds o and returns a function removing it again. A nil o is
// ignored.
func (s *ProgressSubject) Register(o ProgressObserver) (unregister func()) {
	if o == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, registered{id, o})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.observers = slices.DeleteFunc(s.observers, func(r registered) bool { return r.id == id })
	}
}

func (s *ProgressSubject) Notify(index int, progress float64) {
	if s == nil {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(index, progress)
	}
}

// Len reports the number of registered observers.
func (s *ProgressSubject) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsProgressReporter binds the subject to one evaluation index.
func (s *ProgressSubject) AsProgressReporter(index int) ProgressReporter {
	return func(progress float64) { s.Notify(index, progress) }
}

// NewChannelObserver forwards updates to ch without blocking: when ch is
// full the update is dropped and the display catches up on the next one.
// A nil ch discards everything.
func NewChannelObserver(ch chan<- ProgressUpdate) ProgressObserver {
	return ObserverFunc(func(index int, progress float64) {
		if ch == nil {
			return
		}
		select {
		case ch <- ProgressUpdate{Index: index, Value: min(progress, 1)}:
		default:
		}
	})
}

// LoggingObserver writes debug events, at most one per step of progress for
// each evaluation plus the final one.
type LoggingObserver struct {
	logger zerolog.Logger
	step   float64

	mu   sync.Mutex
	last map[int]float64
}

// NewLoggingObserver logs through logger every step of progress (0.1 when
// step is not positive).
func NewLoggingObserver(logger zerolog.Logger, step float64) *LoggingObserver {
	if step <= 0 {
		step = 0.1
	}
	return &LoggingObserver{logger: logger, step: step, last: make(map[int]float64)}
}

func (o *LoggingObserver) Update(index int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if prev, ok := o.last[index]; ok && progress < 1 && progress-prev < o.step {
		return
	}
	o.last[index] = progress
	o.logger.Debug().Int("evaluation", index).Float64("progress", progress).Msg("evaluation progress")
}

var progressGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "seqcalc_evaluation_progress",
	Help: "Progress of the series being evaluated, from 0 to 1.",
}, []string{"series"})

// MetricsObserver exports progress as the seqcalc_evaluation_progress gauge,
// labeled with the series name of each index.
type MetricsObserver struct {
	names []string
}

// NewMetricsObserver labels index i with names[i]. Indices without a name
// are labeled with their number.
func NewMetricsObserver(names []string) *MetricsObserver {
	return &MetricsObserver{names: names}
}

func (o *MetricsObserver) label(index int) string {
	if index >= 0 && index < len(o.names) {
		return o.names[index]
	}
	return strconv.Itoa(index)
}

func (o *MetricsObserver) Update(index int, progress float64) {
	progressGauge.WithLabelValues(o.label(index)).Set(progress)
}

// ResetMetrics drops the gauges of a previous batch.
func (o *MetricsObserver) ResetMetrics() {
	progressGauge.Reset()
}
