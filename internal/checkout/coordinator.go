package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"vendra_back_end/internal/models"
	"vendra_back_end/internal/pricing"

	"github.com/google/uuid"
)

// DefaultAttemptTimeout — délai au-delà duquel une tentative mobile money
// en attente est considérée comme abandonnée (popup fermé autrement que par
// son propre handler, navigateur quitté, etc.)
const DefaultAttemptTimeout = 3 * time.Minute

// GatewayClient — contrat du proxy Paystack du backend distant
type GatewayClient interface {
	InitializePayment(ctx context.Context, req GatewayInitRequest) (*models.PaymentInit, error)
	VerifyPayment(ctx context.Context, reference string) (*models.PaymentVerification, error)
}

// GatewayInitRequest — paramètres d'ouverture de la collecte mobile money
type GatewayInitRequest struct {
	AmountMinor int64  `json:"amount"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Reference   string `json:"reference"`
}

// Attempt — une tentative de paiement mobile money en cours, corrélée à la
// transaction côté passerelle par sa référence
type Attempt struct {
	Reference   string    `json:"reference"`
	AmountMinor int64     `json:"amount_minor"`
	Phone       string    `json:"phone"`
	StartedAt   time.Time `json:"started_at"`
	Deadline    time.Time `json:"deadline"`
}

// Expired indique si la tentative a dépassé son délai
func (a *Attempt) Expired(now time.Time) bool {
	return now.After(a.Deadline)
}

// Coordinator pilote les deux chemins de paiement (cash ou mobile money)
// jusqu'à un résultat confirmé ou échoué
type Coordinator struct {
	gateway GatewayClient
	timeout time.Duration
}

func NewCoordinator(gateway GatewayClient, timeout time.Duration) *Coordinator {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	return &Coordinator{gateway: gateway, timeout: timeout}
}

// ConfirmCash valide un paiement cash. Échoue avec ErrInsufficientPayment
// si le montant reçu est inférieur au total — aucune commande créée, aucun
// changement d'état. Sinon retourne la monnaie à rendre (toujours ≥ 0).
func (co *Coordinator) ConfirmCash(cashAmount, total float64) (float64, error) {
	if cashAmount < total {
		return 0, fmt.Errorf("%w: reçu %.2f pour un total de %.2f", ErrInsufficientPayment, cashAmount, total)
	}
	change := pricing.ComputeChange(cashAmount, total)
	log.Printf("💵 Paiement cash confirmé: %.2f reçu, %.2f à rendre", cashAmount, change)
	return change, nil
}

// InitiateMobileMoney ouvre une collecte mobile money via le proxy Paystack.
// Génère une référence unique côté client, convertit le total en unités
// mineures (×100) et synthétise l'email du payeur depuis son téléphone.
func (co *Coordinator) InitiateMobileMoney(ctx context.Context, phone string, total float64) (*Attempt, *models.PaymentInit, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, nil, fmt.Errorf("%w: téléphone requis pour le mobile money", ErrMissingCustomerInfo)
	}

	reference := NewPaymentReference()
	amountMinor := cartAmountMinor(total)

	init, err := co.gateway.InitializePayment(ctx, GatewayInitRequest{
		AmountMinor: amountMinor,
		Email:       SynthesizeEmail(phone),
		Phone:       phone,
		Reference:   reference,
	})
	if err != nil {
		log.Printf("❌ Échec initialisation passerelle (ref %s): %v", reference, err)
		return nil, nil, &GatewayInitiationError{Err: err}
	}

	// La passerelle peut réattribuer sa propre référence
	if init.Reference != "" {
		reference = init.Reference
	}

	now := time.Now()
	attempt := &Attempt{
		Reference:   reference,
		AmountMinor: amountMinor,
		Phone:       phone,
		StartedAt:   now,
		Deadline:    now.Add(co.timeout),
	}

	log.Printf("📲 Collecte mobile money initiée: ref %s (%d unités mineures) pour %s", reference, amountMinor, phone)
	return attempt, init, nil
}

// VerifyMobileMoney re-vérifie la transaction côté serveur avant de lui faire
// confiance (défense contre un callback client falsifié). Le paiement n'est
// confirmé que si status=true ET gateway_response="Successful".
func (co *Coordinator) VerifyMobileMoney(ctx context.Context, attempt *Attempt) (*models.PaymentVerification, error) {
	if attempt.Expired(time.Now()) {
		return nil, ErrAttemptExpired
	}

	verif, err := co.gateway.VerifyPayment(ctx, attempt.Reference)
	if err != nil {
		return nil, &GatewayVerificationError{Reference: attempt.Reference, GatewayResponse: err.Error()}
	}

	if !verif.Status || verif.GatewayResponse != "Successful" {
		log.Printf("⚠️ Vérification refusée pour %s: status=%v, réponse=%q", attempt.Reference, verif.Status, verif.GatewayResponse)
		return nil, &GatewayVerificationError{Reference: attempt.Reference, GatewayResponse: verif.GatewayResponse}
	}

	log.Printf("✅ Paiement mobile money vérifié: ref %s (%d unités mineures)", attempt.Reference, verif.Amount)
	return verif, nil
}

// NewPaymentReference génère une référence unique par tentative
func NewPaymentReference() string {
	return "VND-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:16])
}

// SynthesizeEmail fabrique l'email payeur attendu par Paystack à partir du
// numéro de téléphone (la caisse ne collecte pas d'adresse email)
func SynthesizeEmail(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "client@vendra.pos"
	}
	return digits.String() + "@vendra.pos"
}
