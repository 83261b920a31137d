package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfoliohub/pkg/models"
)

func comps(ids ...int64) []models.Component {
	out := make([]models.Component, len(ids))
	for i, id := range ids {
		out[i] = models.Component{ID: id, Order: i}
	}
	return out
}

func ids(list []models.Component) []int64 {
	out := make([]int64, len(list))
	for i := range list {
		out[i] = list[i].ID
	}
	return out
}

func TestMoveForward(t *testing.T) {
	list := comps(1, 2, 3, 4)
	moved := Move(list, 0, 2)

	assert.Equal(t, []int64{2, 3, 1, 4}, ids(moved))
	for i := range moved {
		assert.Equal(t, i, moved[i].Order)
	}
	// input slice untouched
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(list))
}

func TestMoveBackward(t *testing.T) {
	list := comps(1, 2, 3, 4)
	moved := Move(list, 3, 1)

	assert.Equal(t, []int64{1, 4, 2, 3}, ids(moved))
	for i := range moved {
		assert.Equal(t, i, moved[i].Order)
	}
}

func TestMoveSamePosition(t *testing.T) {
	list := comps(1, 2, 3)
	moved := Move(list, 1, 1)
	assert.Equal(t, []int64{1, 2, 3}, ids(moved))
}

func TestMoveOutOfRange(t *testing.T) {
	list := comps(1, 2, 3)
	moved := Move(list, -1, 9)
	assert.Equal(t, []int64{1, 2, 3}, ids(moved))
	for i := range moved {
		assert.Equal(t, i, moved[i].Order)
	}
}

func TestRenumberContiguous(t *testing.T) {
	list := comps(1, 2, 3)
	list[0].Order = 4
	list[1].Order = 4
	list[2].Order = 9

	Renumber(list)
	for i := range list {
		assert.Equal(t, i, list[i].Order)
	}
}

func TestChangedOrders(t *testing.T) {
	before := comps(1, 2, 3, 4)
	after := Move(before, 0, 2)

	changed := ChangedOrders(before, after)
	require.Len(t, changed, 3)

	byID := map[int64]int{}
	for _, c := range changed {
		byID[c.ID] = c.Order
	}
	assert.Equal(t, 2, byID[1])
	assert.Equal(t, 0, byID[2])
	assert.Equal(t, 1, byID[3])
	_, ok := byID[4]
	assert.False(t, ok)
}

func TestChangedOrdersSkipsUnsaved(t *testing.T) {
	before := comps(1, 2)
	after := Move(before, 0, 1)
	after[0].ID = 0

	changed := ChangedOrders(before, after)
	require.Len(t, changed, 1)
	assert.Equal(t, int64(1), changed[0].ID)
	assert.Equal(t, 1, changed[0].Order)
}
