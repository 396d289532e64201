package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// Order est l'entité persistée par le backend distant.
// Le ref_code est attribué côté serveur, jamais ici.
type Order struct {
	RefCode       string        `json:"ref_code"`
	CustomerName  string        `json:"customer_name"`
	CustomerPhone string        `json:"customer_phone"`
	OrderDate     time.Time     `json:"order_date"`
	TotalAmount   float64       `json:"total_amount"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Reference     string        `json:"reference,omitempty"`
	Items         []OrderItem   `json:"items"`
}

type OrderItem struct {
	ProductID  string  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}
