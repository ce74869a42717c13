package aggregate

// Tally is the accumulated outcome of an aggregation run. All counters
// are commutative sums, so tallies built from disjoint event shards
// merge into the same totals regardless of processing order.
type Tally struct {
	Agents map[string]int // canonical name -> number of events participated in
	Pairs  map[Pair]int   // unordered pair -> co-participation weight

	ContributingEvents int // events that counted for at least one agent
	SkippedEvents      int // events with no eligible participants
	MaxDay             int // highest day value seen on contributing events
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{
		Agents: make(map[string]int),
		Pairs:  make(map[Pair]int),
	}
}

// Collaborations returns the sum of all pair weights.
func (t *Tally) Collaborations() int {
	total := 0
	for _, w := range t.Pairs {
		total += w
	}
	return total
}

// merge folds other into t by summation.
func (t *Tally) merge(other *Tally) {
	for name, n := range other.Agents {
		t.Agents[name] += n
	}
	for pair, w := range other.Pairs {
		t.Pairs[pair] += w
	}
	t.ContributingEvents += other.ContributingEvents
	t.SkippedEvents += other.SkippedEvents
	if other.MaxDay > t.MaxDay {
		t.MaxDay = other.MaxDay
	}
}
