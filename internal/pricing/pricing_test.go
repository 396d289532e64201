package pricing

import (
	"math"
	"testing"

	"vendra_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeSnapshot_SingleItem(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "1", Name: "Feed", Price: 50, Quantity: 1},
	}

	snap := ComputeSnapshot(items)

	assert.InDelta(t, 50.0, snap.Subtotal, 1e-2)
	assert.InDelta(t, 6.25, snap.Tax, 1e-2)
	assert.InDelta(t, 56.25, snap.Total, 1e-2)
	assert.Equal(t, 0.125, snap.TaxRate)
}

func TestComputeSnapshot_MatchesManualSummation(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "1", Price: 12.5, Quantity: 3},
		{ProductID: "2", Price: 7.99, Quantity: 2},
		{ProductID: "3", Price: 120, Quantity: 1},
	}

	var expected float64
	for _, item := range items {
		expected += item.Price * float64(item.Quantity)
	}

	snap := ComputeSnapshot(items)

	assert.InDelta(t, expected, snap.Subtotal, 1e-2)
	assert.InDelta(t, expected*0.125, snap.Tax, 1e-2)
	assert.InDelta(t, expected*1.125, snap.Total, 1e-2)
}

func TestComputeSnapshot_InvalidPriceCoercedToZero(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "1", Price: -10, Quantity: 2},
		{ProductID: "2", Price: math.NaN(), Quantity: 1},
		{ProductID: "3", Price: math.Inf(1), Quantity: 1},
		{ProductID: "4", Price: 20, Quantity: 1},
	}

	snap := ComputeSnapshot(items)

	assert.InDelta(t, 20.0, snap.Subtotal, 1e-2)
	assert.InDelta(t, 22.5, snap.Total, 1e-2)
}

func TestComputeSnapshot_MissingQuantityDefaultsToOne(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "1", Price: 30},
	}

	snap := ComputeSnapshot(items)

	assert.InDelta(t, 30.0, snap.Subtotal, 1e-2)
}

func TestComputeSnapshot_EmptyCart(t *testing.T) {
	snap := ComputeSnapshot(nil)

	assert.Zero(t, snap.Subtotal)
	assert.Zero(t, snap.Tax)
	assert.Zero(t, snap.Total)
}

func TestComputeChange(t *testing.T) {
	assert.InDelta(t, 3.75, ComputeChange(60, 56.25), 1e-2)
	assert.InDelta(t, 0.0, ComputeChange(56.25, 56.25), 1e-2)
	assert.Less(t, ComputeChange(40, 56.25), 0.0)
}
