package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/seqcalc/internal/series"
)

const (
	// ProgressRefreshRate is how often the spinner suffix is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the bar width in cells.
	ProgressBarWidth = 40

	etaCap = 24 * time.Hour
	// rateWeight is the share of the newest sample in the smoothed rate.
	rateWeight = 0.3
)

// Spinner is the subset of a terminal spinner that DisplayProgress drives.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	*spinner.Spinner
}

func (r realSpinner) UpdateSuffix(suffix string) {
	r.Lock()
	r.Suffix = suffix
	r.Unlock()
}

// newSpinner is swapped out by tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	return realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// progressTracker folds the progress of concurrent evaluations into one
// mean fraction and estimates the remaining time from a smoothed rate.
type progressTracker struct {
	fractions []float64
	now       func() time.Time

	start    time.Time
	lastAt   time.Time
	lastMean float64
	rate     float64 // fraction per second
}

func newProgressTracker(n int) *progressTracker {
	t := &progressTracker{fractions: make([]float64, max(n, 0)), now: time.Now}
	t.start = t.now()
	t.lastAt = t.start
	return t
}

// mean is 0 when nothing is tracked.
func (t *progressTracker) mean() float64 {
	if len(t.fractions) == 0 {
		return 0
	}
	var sum float64
	for _, f := range t.fractions {
		sum += f
	}
	return sum / float64(len(t.fractions))
}

// record stores the fraction reported for one evaluation and refreshes the
// rate estimate. Indices outside the tracked range are dropped.
func (t *progressTracker) record(index int, fraction float64) {
	if index < 0 || index >= len(t.fractions) {
		return
	}
	t.fractions[index] = fraction

	at := t.now()
	m := t.mean()
	since := at.Sub(t.start)
	if since < 100*time.Millisecond || m <= 0.001 {
		t.lastAt, t.lastMean = at, m
		return
	}

	window := at.Sub(t.lastAt)
	if window < 50*time.Millisecond {
		return
	}
	if delta := m - t.lastMean; delta > 0 {
		if t.rate == 0 {
			t.rate = m / since.Seconds()
		} else {
			t.rate += rateWeight * (delta/window.Seconds() - t.rate)
		}
	}
	t.lastAt, t.lastMean = at, m
}

// eta is 0 while no rate is known or once everything is done.
func (t *progressTracker) eta() time.Duration {
	m := t.mean()
	if t.rate <= 0 || m >= 1 {
		return 0
	}
	left := time.Duration((1 - m) / t.rate * float64(time.Second))
	return min(left, etaCap)
}

// FormatETA renders an estimate as "< 1s", "42s", "2m30s" or "1h15m".
func FormatETA(d time.Duration) string {
	switch {
	case d <= 0:
		return "estimating..."
	case d < time.Second:
		return "< 1s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d/time.Second))
	}

	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	default:
		return fmt.Sprintf("%dm", m)
	}
}

func progressBar(fraction float64, width int) string {
	filled := int(min(max(fraction, 0), 1) * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func statusLine(label string, fraction float64, eta string) string {
	return fmt.Sprintf("%s: %6.2f%% [%s] ETA: %s", label, fraction*100, progressBar(fraction, ProgressBarWidth), eta)
}

// DisplayProgress renders a spinner with the mean progress of numEvaluations
// concurrent evaluations until progressChan is closed, then leaves a final
// 100% line on out. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan series.ProgressUpdate, numEvaluations int, out io.Writer) {
	defer wg.Done()
	if numEvaluations <= 0 {
		for range progressChan {
		}
		return
	}

	label := "Progress"
	if numEvaluations > 1 {
		label = "Avg progress"
	}
	tracker := newProgressTracker(numEvaluations)

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				sp.Stop()
				fmt.Fprintln(out, statusLine(label, 1, FormatETA(time.Nanosecond)))
				return
			}
			tracker.record(u.Index, u.Value)
		case <-ticker.C:
			sp.UpdateSuffix(" " + statusLine(label, tracker.mean(), FormatETA(tracker.eta())))
		}
	}
}
