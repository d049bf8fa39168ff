package model

// Tally counts string keys and remembers the order each key was first seen.
type Tally struct {
	counts map[string]int
	order  []string
}

// NewTally returns an empty Tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add increments key by n.
func (t *Tally) Add(key string, n int) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key] += n
}

// Get returns the count for key.
func (t *Tally) Get(key string) int {
	return t.counts[key]
}

// Len returns the number of distinct keys.
func (t *Tally) Len() int {
	return len(t.order)
}

// Keys returns keys in first-seen order.
func (t *Tally) Keys() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Each calls fn for every key in first-seen order.
func (t *Tally) Each(fn func(key string, count int)) {
	for _, k := range t.order {
		fn(k, t.counts[k])
	}
}
