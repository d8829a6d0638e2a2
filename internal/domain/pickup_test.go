package domain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupPickupPoint(t *testing.T) {
	c, ok := LookupPickupPoint("SEC-A Lobby")
	require.True(t, ok)
	assert.Equal(t, 29.0091, c.Lon)
	assert.Equal(t, 41.0862, c.Lat)

	_, ok = LookupPickupPoint("Nowhere")
	assert.False(t, ok)

	// Matching is exact, no trimming or case folding.
	_, ok = LookupPickupPoint("sec-a lobby")
	assert.False(t, ok)
}

func TestPickupPointLabels(t *testing.T) {
	labels := PickupPointLabels()

	assert.Len(t, labels, 5)
	assert.True(t, sort.StringsAreSorted(labels))
	assert.Contains(t, labels, "Library")
	assert.Contains(t, labels, "Main Gate")
}
