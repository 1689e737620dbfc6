package paretofront_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitkit/laxago/criteria"
	"github.com/transitkit/laxago/journey"
	"github.com/transitkit/laxago/paretofront"
)

func TestAddEvictsDominatedEntries(t *testing.T) {
	front := paretofront.New(criteria.Basic{})

	front.Add(1, criteria.Criteria{ArrivalTime: 200, NbLegs: 1})
	added := front.Add(2, criteria.Criteria{ArrivalTime: 100, NbLegs: 1})

	require.True(t, added)
	require.Equal(t, 1, front.Len(), "the earlier-arrival entry dominates and must evict the other")
	assert.Equal(t, journey.Handle(2), front.Entries()[0].Node)
}

func TestAddRejectsDominatedCandidate(t *testing.T) {
	front := paretofront.New(criteria.Basic{})

	front.Add(1, criteria.Criteria{ArrivalTime: 100, NbLegs: 1})
	added := front.Add(2, criteria.Criteria{ArrivalTime: 200, NbLegs: 1})

	assert.False(t, added)
	require.Equal(t, 1, front.Len())
	assert.Equal(t, journey.Handle(1), front.Entries()[0].Node)
}

// P5: a front never holds two entries where one dominates the other.
func TestIncomparableEntriesBothSurvive(t *testing.T) {
	front := paretofront.New(criteria.Basic{})

	front.Add(1, criteria.Criteria{ArrivalTime: 100, NbLegs: 2})
	front.Add(2, criteria.Criteria{ArrivalTime: 200, NbLegs: 1})

	assert.Equal(t, 2, front.Len())
}

func TestMergeImportsViaAdd(t *testing.T) {
	a := paretofront.New(criteria.Basic{})
	a.Add(1, criteria.Criteria{ArrivalTime: 100, NbLegs: 1})

	b := paretofront.New(criteria.Basic{})
	b.Add(2, criteria.Criteria{ArrivalTime: 50, NbLegs: 1})

	a.Merge(b)
	require.Equal(t, 1, a.Len(), "b's entry dominates a's and must evict it")
	assert.Equal(t, journey.Handle(2), a.Entries()[0].Node)
}

func TestDominates(t *testing.T) {
	front := paretofront.New(criteria.Basic{})
	front.Add(1, criteria.Criteria{ArrivalTime: 100, NbLegs: 1})

	assert.True(t, front.Dominates(criteria.Criteria{ArrivalTime: 200, NbLegs: 1}))
	assert.False(t, front.Dominates(criteria.Criteria{ArrivalTime: 50, NbLegs: 1}))
}

func TestDrainEmptiesFront(t *testing.T) {
	front := paretofront.New(criteria.Basic{})
	front.Add(1, criteria.Criteria{ArrivalTime: 100, NbLegs: 1})

	entries := front.Drain()
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, front.Len())
}
