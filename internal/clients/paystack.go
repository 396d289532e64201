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

// PaystackClient parle au proxy Paystack du backend distant :
// POST /paystack/init/ pour ouvrir une collecte, GET /payments/verify/{ref}/
// pour la re-vérification côté serveur. Les clés Paystack restent côté
// backend, jamais ici.
type PaystackClient struct {
	baseURL     string
	callbackURL string
	http        *http.Client
	token       TokenSource
}

func NewPaystackClient(baseURL, callbackURL string, token TokenSource) *PaystackClient {
	return &PaystackClient{
		baseURL:     baseURL,
		callbackURL: callbackURL,
		http:        &http.Client{Timeout: 15 * time.Second},
		token:       token,
	}
}

// InitializePayment ouvre une collecte mobile money
func (c *PaystackClient) InitializePayment(ctx context.Context, req checkout.GatewayInitRequest) (*models.PaymentInit, error) {
	payload := map[string]interface{}{
		"amount":       req.AmountMinor,
		"email":        req.Email,
		"phone":        req.Phone,
		"reference":    req.Reference,
		"callback_url": c.callbackURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/paystack/init/", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if err := c.authorize(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("proxy paystack a répondu %d: %s", resp.StatusCode, string(raw))
	}

	var init models.PaymentInit
	if err := json.Unmarshal(raw, &init); err != nil {
		return nil, fmt.Errorf("réponse init illisible: %w", err)
	}

	log.Printf("💳 Init passerelle OK: access_code %s, ref %s", init.AccessCode, init.Reference)
	return &init, nil
}

// VerifyPayment interroge la passerelle sur l'état réel de la transaction
func (c *PaystackClient) VerifyPayment(ctx context.Context, reference string) (*models.PaymentVerification, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/verify/"+reference+"/", nil)
	if err != nil {
		return nil, err
	}
	if err := c.authorize(httpReq); err != nil {
		return nil, err
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("vérification a répondu %d: %s", resp.StatusCode, string(raw))
	}

	var verif models.PaymentVerification
	if err := json.Unmarshal(raw, &verif); err != nil {
		return nil, fmt.Errorf("réponse vérification illisible: %w", err)
	}
	return &verif, nil
}

func (c *PaystackClient) authorize(req *http.Request) error {
	token, err := c.token()
	if err != nil {
		return fmt.Errorf("token backend indisponible: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
