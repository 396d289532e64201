package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/models"
)

// TokenSource fournit le bearer token ambiant (géré par le collaborateur
// d'authentification, hors périmètre ici)
type TokenSource func() (string, error)

// OrderCreationError — le backend a refusé (ou l'appel réseau a échoué).
// Le paiement est déjà encaissé à ce stade : la session ne doit PAS avancer
// vers COMPLETED, elle reste en confirmé-mais-non-enregistré.
type OrderCreationError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
	Err        error
}

func (e *OrderCreationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("création de commande échouée: %v", e.Err)
	}
	return fmt.Sprintf("création de commande refusée (%d): %s", e.StatusCode, e.Message)
}

func (e *OrderCreationError) Unwrap() error { return e.Err }

// OrdersClient persiste les commandes encaissées via POST /orders/ sur le
// backend distant. Exactement un écrit réseau par invocation, aucun retry
// automatique (la reprise est la responsabilité de l'appelant).
type OrdersClient struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func NewOrdersClient(baseURL string, token TokenSource) *OrdersClient {
	return &OrdersClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		token:   token,
	}
}

// CreateOrder construit le payload commande et l'envoie au backend.
// Retourne la commande créée, ref_code serveur inclus.
func (c *OrdersClient) CreateOrder(ctx context.Context, req checkout.OrderRequest) (*models.Order, error) {
	type orderItemPayload struct {
		ProductID  string  `json:"product_id"`
		Quantity   int     `json:"quantity"`
		UnitPrice  float64 `json:"unit_price"`
		TotalPrice float64 `json:"total_price"`
	}

	items := make([]orderItemPayload, 0, len(req.Items))
	for _, item := range req.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, orderItemPayload{
			ProductID:  item.ProductID,
			Quantity:   qty,
			UnitPrice:  item.Price,
			TotalPrice: item.Price * float64(qty),
		})
	}

	payload := map[string]interface{}{
		"customer_name":  req.Customer.Name,
		"customer_phone": req.Customer.Phone,
		"order_date":     time.Now().UTC().Format(time.RFC3339),
		"total_amount":   req.TotalAmount,
		"payment_method": req.PaymentMethod,
		"payment_status": req.PaymentStatus,
		"reference":      req.Reference,
		"items":          items,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &OrderCreationError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/", bytes.NewReader(body))
	if err != nil {
		return nil, &OrderCreationError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	token, err := c.token()
	if err != nil {
		return nil, &OrderCreationError{Err: fmt.Errorf("token backend indisponible: %w", err)}
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &OrderCreationError{Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Le backend renvoie une erreur structurée: message + erreurs par champ
		var apiErr struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		log.Printf("❌ Backend a refusé la commande (%d): %s", resp.StatusCode, apiErr.Message)
		return nil, &OrderCreationError{StatusCode: resp.StatusCode, Message: apiErr.Message, Fields: apiErr.Errors}
	}

	var order models.Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, &OrderCreationError{Err: fmt.Errorf("réponse commande illisible: %w", err)}
	}

	log.Printf("📦 Commande persistée: ref_code %s (%.2f)", order.RefCode, order.TotalAmount)
	return &order, nil
}
