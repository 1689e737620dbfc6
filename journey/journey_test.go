package journey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitkit/laxago/journey"
	"github.com/transitkit/laxago/transitdata"
)

func TestInsertAndWalkParentChain(t *testing.T) {
	tree := journey.NewTree()

	waiting := tree.InsertWaiting(journey.NoParent, transitdata.StopIdx(1), 100)
	onboard := tree.InsertOnboard(waiting, transitdata.Trip{}, 0, 100)
	debarked := tree.InsertDebarked(onboard, transitdata.StopIdx(2), 200)
	arrived := tree.InsertArrived(debarked)

	require.Equal(t, 4, tree.Len())

	n := tree.Node(arrived)
	require.Equal(t, journey.KindArrived, n.Kind)
	assert.Equal(t, debarked, n.Parent)

	n = tree.Node(n.Parent)
	require.Equal(t, journey.KindDebarked, n.Kind)
	assert.Equal(t, transitdata.StopIdx(2), n.DebarkedStop)
	assert.Equal(t, onboard, n.Parent)

	n = tree.Node(n.Parent)
	require.Equal(t, journey.KindOnboard, n.Kind)
	assert.Equal(t, waiting, n.Parent)

	n = tree.Node(n.Parent)
	require.Equal(t, journey.KindWaiting, n.Kind)
	assert.Equal(t, journey.NoParent, n.Parent)
}

func TestNodesAreNeverMutatedInPlace(t *testing.T) {
	tree := journey.NewTree()
	h1 := tree.InsertWaiting(journey.NoParent, transitdata.StopIdx(1), 100)
	h2 := tree.InsertWaiting(journey.NoParent, transitdata.StopIdx(2), 200)
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, transitdata.StopIdx(1), tree.Node(h1).Stop)
	assert.Equal(t, transitdata.StopIdx(2), tree.Node(h2).Stop)
}
