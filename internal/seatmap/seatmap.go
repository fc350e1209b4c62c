package seatmap

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// ErrInvalidSeatFormat is returned for seat labels that do not match the
// <Column><Row> shape, e.g. "A12". Column is one of A-D (upper case only),
// row is a base-10 non-negative integer with no sign or surrounding text.
var ErrInvalidSeatFormat = errors.New("invalid seat format")

var labelPattern = regexp.MustCompile(`^[A-D][0-9]+$`)

// columnWeights breaks ties within a row: window seats count as slightly
// farther than aisle seats. Weights stay below 1 so the row number always
// dominates the ordering.
var columnWeights = map[byte]float64{
	'A': 0.3,
	'B': 0.2,
	'C': 0.1,
	'D': 0.0,
}

// ValidLabel reports whether s is a syntactically valid seat label.
func ValidLabel(s string) bool {
	return labelPattern.MatchString(s)
}

// Distance computes the boarding distance for a seat label without any
// caching: row number plus column weight. Rows carry no digit limit;
// runs past the int range still resolve, rounded into float64.
func Distance(label string) (float64, error) {
	if !labelPattern.MatchString(label) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatFormat, label)
	}
	// The pattern pins label[1:] to plain digits, so ParseFloat can only
	// fail past float64's range.
	row, err := strconv.ParseFloat(label[1:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeatFormat, label)
	}
	return row + columnWeights[label[0]], nil
}

// Stats is a snapshot of the resolver's cache counters.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// HitRate returns hits/(hits+misses), or 0 when nothing has been resolved.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Resolver memoizes seat distances and keeps hit/miss counters for server-side
// diagnostics. A single Resolver is shared across requests; all methods are
// safe for concurrent use. The counters never influence computed distances.
type Resolver struct {
	mu     sync.Mutex
	cache  map[string]float64
	hits   uint64
	misses uint64
}

// NewResolver creates a resolver with an empty cache and zeroed counters.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]float64)}
}

// Resolve returns the boarding distance for label, serving repeats from the
// cache. A given label resolves to the same value for the life of the cache.
// Invalid labels fail without being cached or counted.
func (r *Resolver) Resolve(label string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d, ok := r.cache[label]; ok {
		r.hits++
		return d, nil
	}

	d, err := Distance(label)
	if err != nil {
		return 0, err
	}

	r.misses++
	r.cache[label] = d
	return d, nil
}

// Stats returns a snapshot of the hit/miss counters.
func (r *Resolver) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Hits: r.hits, Misses: r.misses}
}

// Len returns the number of memoized labels.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Reset clears the memoized distances and both counters in one step, so a
// benchmark trial always starts from a cold cache.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]float64)
	r.hits = 0
	r.misses = 0
}
