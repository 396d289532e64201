package receipt

import (
	"strings"
	"testing"
	"time"

	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() *models.Order {
	return &models.Order{
		RefCode:       "ORD-2024-001",
		CustomerName:  "Awa",
		OrderDate:     time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC),
		TotalAmount:   56.25,
		PaymentMethod: models.PaymentMethodCash,
		PaymentStatus: models.PaymentStatusCompleted,
		Items: []models.OrderItem{
			{ProductID: "1", Quantity: 1, UnitPrice: 50, TotalPrice: 50},
		},
	}
}

func TestBuild_CashReceipt(t *testing.T) {
	payment := &checkout.ConfirmedPayment{
		Method: models.PaymentMethodCash,
		Amount: 56.25,
		Change: 3.75,
	}

	r, err := Build(sampleOrder(), payment)

	require.NoError(t, err)
	assert.Equal(t, "ORD-2024-001", r.RefCode)
	assert.Equal(t, "Awa", r.CustomerName)
	assert.Equal(t, "01/06/2024 10:30", r.OrderDate)
	// Sous-total et TVA redérivés depuis le total TTC
	assert.InDelta(t, 50, r.Subtotal, 1e-2)
	assert.InDelta(t, 6.25, r.Tax, 1e-2)
	assert.InDelta(t, 56.25, r.Total, 1e-2)
	assert.InDelta(t, 60, r.CashReceived, 1e-2)
	assert.InDelta(t, 3.75, r.Change, 1e-2)
	assert.True(t, strings.HasPrefix(r.QRCode, "data:image/png;base64,"))
}

func TestBuild_MobileMoneyReceipt(t *testing.T) {
	order := sampleOrder()
	order.PaymentMethod = models.PaymentMethodMobileMoney
	payment := &checkout.ConfirmedPayment{
		Method:    models.PaymentMethodMobileMoney,
		Amount:    56.25,
		Reference: "VND-ABC123",
	}

	r, err := Build(order, payment)

	require.NoError(t, err)
	assert.Equal(t, "VND-ABC123", r.Reference)
	assert.Zero(t, r.CashReceived)
	assert.Zero(t, r.Change)
}

func TestBuild_MissingOrder(t *testing.T) {
	_, err := Build(nil, &checkout.ConfirmedPayment{})
	assert.Error(t, err)

	_, err = Build(sampleOrder(), nil)
	assert.Error(t, err)
}

func TestGenerateReceiptHTML(t *testing.T) {
	payment := &checkout.ConfirmedPayment{
		Method: models.PaymentMethodCash,
		Amount: 56.25,
		Change: 3.75,
	}
	r, err := Build(sampleOrder(), payment)
	require.NoError(t, err)

	html := GenerateReceiptHTML(r)

	assert.Contains(t, html, "ORD-2024-001")
	assert.Contains(t, html, "Awa")
	assert.Contains(t, html, "TOTAL : 56.25")
	assert.Contains(t, html, "TVA (12.5%) : 6.25")
	assert.Contains(t, html, "rendu 3.75")
	assert.Contains(t, html, "data:image/png;base64,")
}
