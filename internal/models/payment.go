package models

// PaymentInit — réponse du proxy Paystack du backend après POST /paystack/init/
type PaymentInit struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// PaymentVerification — réponse de GET /payments/verify/{reference}/.
// Un paiement n'est confirmé que si Status est true ET GatewayResponse
// vaut "Successful" (vérification côté serveur, jamais confiance au client).
type PaymentVerification struct {
	Status          bool   `json:"status"`
	GatewayResponse string `json:"gateway_response"`
	PaidAt          string `json:"paid_at"`
	Amount          int64  `json:"amount"` // en unités mineures
}
