// Package paretofront implements the per-stop Pareto front used by
// the solver: spec.md §3 "Pareto front" and §4.G. A front retains only
// entries no other entry dominates, under a pluggable
// criteria.Provider's IsLower relation.
package paretofront

import (
	"github.com/transitkit/laxago/criteria"
	"github.com/transitkit/laxago/journey"
)

// Entry pairs a journey-tree handle with the criteria value that got
// it there.
type Entry struct {
	Node     journey.Handle
	Criteria criteria.Criteria
}

// Front is a Pareto-optimal set of Entry values: no entry's Criteria
// dominates another's. Complexity is O(n) per Add; n stays small in
// practice (spec.md §4.G: < 50).
type Front struct {
	provider criteria.Provider
	entries  []Entry
}

// New creates an empty Front comparing entries with provider.
func New(provider criteria.Provider) *Front {
	return &Front{provider: provider}
}

// Add inserts (node, c): if c is dominated by any existing entry it is
// discarded, otherwise every existing entry c dominates is evicted and
// (node, c) is appended. Reports whether the entry survived.
func (f *Front) Add(node journey.Handle, c criteria.Criteria) bool {
	for _, e := range f.entries {
		if f.provider.IsLower(e.Criteria, c) {
			return false
		}
	}

	kept := f.entries[:0]
	for _, e := range f.entries {
		if !f.provider.IsLower(c, e.Criteria) {
			kept = append(kept, e)
		}
	}
	f.entries = append(kept, Entry{Node: node, Criteria: c})
	return true
}

// Merge imports every entry of other via Add.
func (f *Front) Merge(other *Front) {
	for _, e := range other.entries {
		f.Add(e.Node, e.Criteria)
	}
}

// Dominates reports whether any entry in f dominates c.
func (f *Front) Dominates(c criteria.Criteria) bool {
	for _, e := range f.entries {
		if f.provider.IsLower(e.Criteria, c) {
			return true
		}
	}
	return false
}

// Entries returns the front's current contents. The returned slice
// must not be mutated by the caller.
func (f *Front) Entries() []Entry {
	return f.entries
}

// Len returns the number of surviving entries.
func (f *Front) Len() int { return len(f.entries) }

// Drain moves every entry out of f, leaving it empty, and returns
// them.
func (f *Front) Drain() []Entry {
	out := f.entries
	f.entries = nil
	return out
}

// Clear empties f without returning its contents.
func (f *Front) Clear() {
	f.entries = nil
}
