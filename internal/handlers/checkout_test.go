package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/models"
	"vendra_back_end/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct{}

func (stubOrders) CreateOrder(_ context.Context, req checkout.OrderRequest) (*models.Order, error) {
	return &models.Order{
		RefCode:       "ORD-001",
		CustomerName:  req.Customer.Name,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
	}, nil
}

func newCashRouter() (*gin.Engine, *checkout.Session) {
	gin.SetMode(gin.TestMode)
	reg := checkout.NewRegistry(checkout.NewCoordinator(nil, time.Minute), stubOrders{}, nil)
	Setup(reg, notify.LogNotifier{})

	r := gin.New()
	r.POST("/api/checkout/cash", func(c *gin.Context) {
		c.Set("terminal_id", "caisse-1")
		ConfirmCash(c)
	})
	return r, reg.Active("caisse-1")
}

func postCash(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/cash", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestConfirmCashHandler_ZeroTenderAccepted(t *testing.T) {
	r, sess := newCashRouter()
	// Panier à total nul (article gratuit) : un encaissement à 0 est légitime
	sess.Cart.AddItem(models.CartItem{ProductID: "1", Name: "Échantillon", Price: 0, Quantity: 1})
	sess.SetCustomer(models.CustomerInfo{Name: "Awa"})
	require.NoError(t, sess.SelectMethod(models.PaymentMethodCash))

	w := postCash(r, `{"cash_amount": 0}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, checkout.PhaseCompleted, sess.State().Phase)
}

func TestConfirmCashHandler_MissingAmountRejected(t *testing.T) {
	r, sess := newCashRouter()
	sess.Cart.AddItem(models.CartItem{ProductID: "1", Name: "Feed", Price: 50, Quantity: 1})
	sess.SetCustomer(models.CustomerInfo{Name: "Awa"})
	require.NoError(t, sess.SelectMethod(models.PaymentMethodCash))

	w := postCash(r, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, checkout.PhaseAwaitingPayment, sess.State().Phase)
}
