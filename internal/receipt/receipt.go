package receipt

import (
	"encoding/base64"
	"fmt"

	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/models"
	"vendra_back_end/internal/pricing"

	"github.com/skip2/go-qrcode"
)

// Receipt — charge utile de la surface d'impression. Construite uniquement
// après COMPLETED ; un échec ici ne remet jamais en cause l'encaissement.
type Receipt struct {
	RefCode       string               `json:"ref_code"`
	CustomerName  string               `json:"customer_name"`
	OrderDate     string               `json:"order_date"`
	Items         []models.OrderItem   `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CashReceived  float64              `json:"cash_received,omitempty"`
	Change        float64              `json:"change,omitempty"`
	Reference     string               `json:"payment_reference,omitempty"`
	QRCode        string               `json:"qr_code"` // data URL PNG
}

// Build assemble le reçu depuis la commande persistée et le paiement encaissé
func Build(order *models.Order, payment *checkout.ConfirmedPayment) (*Receipt, error) {
	if order == nil || payment == nil {
		return nil, fmt.Errorf("reçu impossible: commande ou paiement manquant")
	}

	// On redérive sous-total et taxe depuis le total TTC enregistré
	subtotal := order.TotalAmount / (1 + pricing.TaxRate)
	tax := order.TotalAmount - subtotal

	qr, err := GenerateRefQR(order.RefCode)
	if err != nil {
		return nil, err
	}

	r := &Receipt{
		RefCode:       order.RefCode,
		CustomerName:  order.CustomerName,
		OrderDate:     order.OrderDate.Format("02/01/2006 15:04"),
		Items:         order.Items,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Reference:     payment.Reference,
		QRCode:        qr,
	}

	if payment.Method == models.PaymentMethodCash {
		r.CashReceived = payment.Amount + payment.Change
		r.Change = payment.Change
	}
	return r, nil
}

// GenerateRefQR génère le QR du ref_code en base64 prêt à mettre dans <img src="...">
func GenerateRefQR(refCode string) (string, error) {
	png, err := qrcode.Encode(refCode, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
