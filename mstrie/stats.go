package mstrie

import (
	"fmt"
	"time"
)

// TimeUnit selects the unit that Stats reports elapsed query time in.
type TimeUnit string

const (
	UnitSeconds      TimeUnit = "s"
	UnitMilliseconds TimeUnit = "ms"
	UnitMicroseconds TimeUnit = "µs"
	UnitNanoseconds  TimeUnit = "ns"
)

// Stats tracks per-query counters (reset on every public query) and
// lifetime counters (mutated only by insert/delete), per spec.md §4.5.
type Stats struct {
	unit TimeUnit

	lastQueryName      string
	lastQueryTraversed int
	tpStart            time.Time
	tpEnd              time.Time

	totalNodes    int
	totalMultisets int
}

// NewStats constructs a Stats tracker. unit defaults to µs when empty, as
// the original µs-by-default constructor does.
func NewStats(unit TimeUnit) *Stats {
	if unit == "" {
		unit = UnitMicroseconds
	}
	return &Stats{
		unit:       unit,
		totalNodes: 2, // root + the conceptual acceptor sentinel, per spec.md invariant 4
	}
}

// reset clears the per-query counters at the entry of every public query.
func (s *Stats) reset(name string) {
	s.lastQueryName = name
	s.lastQueryTraversed = 0
	s.tpStart = time.Time{}
	s.tpEnd = time.Time{}
}

func (s *Stats) start() {
	s.tpStart = now()
}

func (s *Stats) stop() {
	s.tpEnd = now()
}

// traverse increments the per-query traversed-node count by one.
func (s *Stats) traverse() {
	s.lastQueryTraversed++
}

// elapsed returns the last query's elapsed duration in the configured unit.
func (s *Stats) elapsed() float64 {
	d := s.tpEnd.Sub(s.tpStart)
	switch s.unit {
	case UnitSeconds:
		return d.Seconds()
	case UnitMilliseconds:
		return float64(d.Nanoseconds()) / float64(time.Millisecond)
	case UnitNanoseconds:
		return float64(d.Nanoseconds())
	default: // UnitMicroseconds
		return float64(d.Nanoseconds()) / float64(time.Microsecond)
	}
}

// LastQueryReport renders "Last query: <name>; time: <n> <unit>; nodes: <t>\n".
func (s *Stats) LastQueryReport() string {
	return fmt.Sprintf("Last query: %s; time: %v %s; nodes: %d\n",
		s.lastQueryName, s.elapsed(), s.unit, s.lastQueryTraversed)
}

// TotalReport renders "Total nodes: <n>; total multisets: <m>\n".
func (s *Stats) TotalReport() string {
	return fmt.Sprintf("Total nodes: %d; total multisets: %d\n", s.totalNodes, s.totalMultisets)
}

// BenchmarkReport renders the bare numeric elapsed time followed by the unit, no separator.
func (s *Stats) BenchmarkReport() string {
	return fmt.Sprintf("%v%s", s.elapsed(), s.unit)
}

// TotalNodes returns the lifetime node counter.
func (s *Stats) TotalNodes() int { return s.totalNodes }

// TotalMultisets returns the lifetime multiset counter.
func (s *Stats) TotalMultisets() int { return s.totalMultisets }

// now returns the current wall-clock time; start and stop take their
// timestamps through it.
func now() time.Time { return time.Now() }
