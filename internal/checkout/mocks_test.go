package checkout

import (
	"context"

	"vendra_back_end/internal/models"
)

// MockGateway implémente GatewayClient pour les tests
type MockGateway struct {
	InitResp    *models.PaymentInit
	InitErr     error
	InitCalls   int
	LastInit    GatewayInitRequest
	VerifyResp  *models.PaymentVerification
	VerifyErr   error
	VerifyCalls int
}

func (m *MockGateway) InitializePayment(_ context.Context, req GatewayInitRequest) (*models.PaymentInit, error) {
	m.InitCalls++
	m.LastInit = req
	if m.InitErr != nil {
		return nil, m.InitErr
	}
	if m.InitResp != nil {
		return m.InitResp, nil
	}
	return &models.PaymentInit{
		AuthorizationURL: "https://checkout.paystack.test/" + req.Reference,
		AccessCode:       "AC_" + req.Reference,
		Reference:        req.Reference,
	}, nil
}

func (m *MockGateway) VerifyPayment(_ context.Context, reference string) (*models.PaymentVerification, error) {
	m.VerifyCalls++
	if m.VerifyErr != nil {
		return nil, m.VerifyErr
	}
	if m.VerifyResp != nil {
		return m.VerifyResp, nil
	}
	return &models.PaymentVerification{Status: true, GatewayResponse: "Successful"}, nil
}

// MockOrders implémente OrdersClient pour les tests
type MockOrders struct {
	Err     error
	Calls   int
	LastReq OrderRequest

	// Hook optionnel exécuté pendant CreateOrder (test de ré-entrance)
	OnCreate func()
}

func (m *MockOrders) CreateOrder(_ context.Context, req OrderRequest) (*models.Order, error) {
	m.Calls++
	m.LastReq = req
	if m.OnCreate != nil {
		m.OnCreate()
	}
	if m.Err != nil {
		return nil, m.Err
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.Price * float64(item.Quantity),
		})
	}

	return &models.Order{
		RefCode:       "ORD-001",
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: req.PaymentStatus,
		Reference:     req.Reference,
		Items:         items,
	}, nil
}

// MockLedger implémente ReferenceLedger pour les tests
type MockLedger struct {
	Seen map[string]bool
	Err  error
}

func (m *MockLedger) MarkCompleted(_ context.Context, reference string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	if m.Seen == nil {
		m.Seen = make(map[string]bool)
	}
	if m.Seen[reference] {
		return false, nil
	}
	m.Seen[reference] = true
	return true, nil
}
