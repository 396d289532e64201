package cart

import (
	"testing"

	"vendra_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAddItem_AppendsAndReprices(t *testing.T) {
	s := NewStore()

	snap := s.AddItem(models.CartItem{ProductID: "p1", Name: "Feed", Price: 50, Quantity: 1})

	assert.Len(t, s.Items(), 1)
	assert.InDelta(t, 56.25, snap.Total, 1e-2)
}

func TestAddItem_DuplicateProductIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 50, Quantity: 1})

	snap := s.AddItem(models.CartItem{ProductID: "p1", Price: 50, Quantity: 4})

	items := s.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.InDelta(t, 56.25, snap.Total, 1e-2)
}

func TestAddItem_QuantityDefaultsToOne(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 10})

	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	s.AddItem(models.CartItem{ProductID: "p2", Price: 20, Quantity: 1})

	snap := s.RemoveItem("p1")

	assert.Len(t, s.Items(), 1)
	assert.Equal(t, "p2", s.Items()[0].ProductID)
	assert.InDelta(t, 22.5, snap.Total, 1e-2)
}

func TestRemoveItem_AbsentIsSilent(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})

	assert.NotPanics(t, func() { s.RemoveItem("inconnu") })
	assert.Len(t, s.Items(), 1)
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})
	s.AddItem(models.CartItem{ProductID: "p2", Price: 20, Quantity: 1})

	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Zero(t, s.Snapshot().Total)
}

func TestSnapshot_ConsistentAfterMutationSequence(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 12.5, Quantity: 3})
	s.AddItem(models.CartItem{ProductID: "p2", Price: 7.99, Quantity: 2})
	s.RemoveItem("p1")
	s.AddItem(models.CartItem{ProductID: "p3", Price: 100, Quantity: 1})

	subtotal := 7.99*2 + 100
	snap := s.Snapshot()

	assert.InDelta(t, subtotal, snap.Subtotal, 1e-2)
	assert.InDelta(t, subtotal*0.125, snap.Tax, 1e-2)
	assert.InDelta(t, subtotal*1.125, snap.Total, 1e-2)
}

func TestItems_ReturnsCopy(t *testing.T) {
	s := NewStore()
	s.AddItem(models.CartItem{ProductID: "p1", Price: 10, Quantity: 1})

	items := s.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, s.Items()[0].Quantity)
}
