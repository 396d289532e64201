package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"vendra_back_end/internal/cart"
	"vendra_back_end/internal/models"
)

// OrdersClient — contrat de persistance des commandes sur le backend distant
type OrdersClient interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error)
}

// OrderRequest — tout ce qu'il faut pour persister une commande encaissée
type OrderRequest struct {
	Customer      models.CustomerInfo
	Items         []models.CartItem
	TotalAmount   float64
	PaymentMethod models.PaymentMethod
	PaymentStatus models.PaymentStatus
	Reference     string
}

// ReferenceLedger enregistre les références d'encaissement déjà persistées,
// pour refuser une double persistance après un timeout ambigu
type ReferenceLedger interface {
	// MarkCompleted retourne false si la référence était déjà enregistrée
	MarkCompleted(ctx context.Context, reference string) (bool, error)
}

// ConfirmedPayment — paiement encaissé, en attente (ou pas) de persistance
type ConfirmedPayment struct {
	Method    models.PaymentMethod `json:"method"`
	Amount    float64              `json:"amount"`
	Change    float64              `json:"change"`
	Reference string               `json:"reference,omitempty"`
	PaidAt    time.Time            `json:"paid_at"`
}

// Session — une session d'encaissement par terminal de caisse. Porte le
// panier, la machine d'état et le paiement confirmé. Mono-écrivain : toutes
// les mutations viennent d'actions utilisateur synchrones.
type Session struct {
	ID   string
	Cart *cart.Store

	mu        sync.Mutex
	phase     Phase
	method    models.PaymentMethod
	customer  models.CustomerInfo
	attempt   *Attempt
	confirmed *ConfirmedPayment
	// confirmedItems — photo du panier au moment exact de la confirmation.
	// La commande est persistée (et re-persistée) depuis cette photo : un
	// article ajouté après coup n'entre jamais dans une vente déjà payée.
	confirmedItems []models.CartItem
	order          *models.Order
	busy           bool
	reference      string // token d'idempotence, généré une fois par session

	coord  *Coordinator
	orders OrdersClient
	ledger ReferenceLedger
}

// SessionState — vue exposée au panneau de caisse
type SessionState struct {
	Phase     Phase                  `json:"phase"`
	Method    models.PaymentMethod   `json:"payment_method,omitempty"`
	Customer  models.CustomerInfo    `json:"customer"`
	Snapshot  models.PricingSnapshot `json:"pricing"`
	Items     []models.CartItem      `json:"items"`
	Confirmed *ConfirmedPayment      `json:"confirmed_payment,omitempty"`
	Order     *models.Order          `json:"order,omitempty"`
	Attempt   *Attempt               `json:"pending_attempt,omitempty"`
}

func NewSession(id string, coord *Coordinator, orders OrdersClient, ledger ReferenceLedger) *Session {
	return &Session{
		ID:        id,
		Cart:      cart.NewStore(),
		phase:     PhaseIdle,
		coord:     coord,
		orders:    orders,
		ledger:    ledger,
		reference: NewPaymentReference(),
	}
}

// State retourne une photo cohérente de la session
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncPhaseLocked()

	return SessionState{
		Phase:     s.phase,
		Method:    s.method,
		Customer:  s.customer,
		Snapshot:  s.Cart.Snapshot(),
		Items:     s.Cart.Items(),
		Confirmed: s.confirmed,
		Order:     s.order,
		Attempt:   s.attempt,
	}
}

// syncPhaseLocked — Idle → SelectingPayment automatique dès que le panier
// est non vide (et l'inverse tant qu'aucune méthode n'est choisie)
func (s *Session) syncPhaseLocked() {
	if s.phase == PhaseIdle && !s.Cart.IsEmpty() {
		s.phase = PhaseSelectingPayment
	}
	if s.phase == PhaseSelectingPayment && s.Cart.IsEmpty() {
		s.phase = PhaseIdle
	}
}

// SetCustomer enregistre les infos client de la session
func (s *Session) SetCustomer(info models.CustomerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = info
}

// SelectMethod choisit (ou change) la méthode de paiement. Autorisé tant que
// le paiement n'est pas confirmé ; changer de méthode abandonne la tentative
// mobile money en cours.
func (s *Session) SelectMethod(method models.PaymentMethod) error {
	if method != models.PaymentMethodCash && method != models.PaymentMethodMobileMoney {
		return fmt.Errorf("méthode de paiement inconnue: %q", method)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncPhaseLocked()

	switch s.phase {
	case PhaseSelectingPayment, PhaseAwaitingPayment:
		s.method = method
		s.attempt = nil
		s.phase = PhaseAwaitingPayment
		return nil
	case PhaseIdle:
		return ErrEmptyCart
	default:
		return fmt.Errorf("%w: %s → %s", ErrIllegalTransition, s.phase, PhaseAwaitingPayment)
	}
}

// Reset — fermeture/réouverture du panneau : retour à Idle, infos client et
// méthode effacées, panier CONSERVÉ. Interdit une fois l'argent encaissé
// tant que la commande n'est pas sauvegardée.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhasePaymentConfirmed || s.phase == PhaseOrderPersisting {
		return fmt.Errorf("%w: paiement encaissé, la commande doit d'abord être enregistrée", ErrIllegalTransition)
	}
	// COMPLETED est terminal : la vente suivante passe par une session
	// fraîche (nouvelle référence d'idempotence), jamais par celle-ci
	if s.phase.IsTerminal() {
		return fmt.Errorf("%w: session terminée, la prochaine vente ouvre une nouvelle session", ErrIllegalTransition)
	}

	s.phase = PhaseIdle
	s.method = ""
	s.customer = models.CustomerInfo{}
	s.attempt = nil
	if s.order == nil {
		s.confirmed = nil
		s.confirmedItems = nil
	}
	s.syncPhaseLocked()
	return nil
}

// CashResult — résultat d'un encaissement cash complet
type CashResult struct {
	Change float64       `json:"change"`
	Order  *models.Order `json:"order,omitempty"`
}

// ConfirmCash valide le paiement cash puis persiste la commande. Si la
// persistance échoue, le paiement reste confirmé (change déjà rendu !) et
// l'erreur retournée est une OrderCreationError — la session reste en
// PAYMENT_CONFIRMED pour permettre une reprise manuelle.
func (s *Session) ConfirmCash(ctx context.Context, cashAmount float64) (*CashResult, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	s.mu.Lock()
	s.syncPhaseLocked()
	if s.phase != PhaseAwaitingPayment || s.method != models.PaymentMethodCash {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: pas en attente d'un paiement cash", ErrIllegalTransition)
	}
	if s.customer.Name == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: nom du client requis", ErrMissingCustomerInfo)
	}

	// Total, validation et photo du panier sous le même verrou : le montant
	// confirmé et les articles facturés viennent du même instant
	total := s.Cart.Snapshot().Total
	change, err := s.coord.ConfirmCash(cashAmount, total)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	s.confirmed = &ConfirmedPayment{
		Method: models.PaymentMethodCash,
		Amount: total,
		Change: change,
		PaidAt: time.Now(),
	}
	s.confirmedItems = s.Cart.Items()
	s.phase = PhasePaymentConfirmed
	s.mu.Unlock()

	order, err := s.persistOrder(ctx)
	if err != nil {
		return &CashResult{Change: change}, err
	}
	return &CashResult{Change: change, Order: order}, nil
}

// InitiateMobileMoney démarre la collecte mobile money. La tentative reste
// en attente jusqu'au callback du panneau (succès, annulation) ou expiration.
func (s *Session) InitiateMobileMoney(ctx context.Context) (*models.PaymentInit, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	s.mu.Lock()
	s.syncPhaseLocked()
	if s.phase != PhaseAwaitingPayment || s.method != models.PaymentMethodMobileMoney {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: pas en attente d'un paiement mobile money", ErrIllegalTransition)
	}
	if s.customer.Name == "" {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: nom du client requis", ErrMissingCustomerInfo)
	}
	phone := s.customer.Phone
	total := s.Cart.Snapshot().Total
	s.mu.Unlock()

	attempt, init, err := s.coord.InitiateMobileMoney(ctx, phone, total)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.attempt = attempt
	s.mu.Unlock()
	return init, nil
}

// CancelMobileMoney — callback de fermeture du popup : le paiement reste non
// confirmé, l'utilisateur peut réessayer ou changer de méthode. Jamais vers
// COMPLETED.
func (s *Session) CancelMobileMoney() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt != nil {
		log.Printf("🚫 Collecte mobile money annulée: ref %s", s.attempt.Reference)
	}
	s.attempt = nil
}

// ConfirmMobileMoney — callback de succès du popup : re-vérifie la
// transaction côté serveur avant de la croire, puis persiste la commande.
func (s *Session) ConfirmMobileMoney(ctx context.Context, reference string) (*models.Order, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	s.mu.Lock()
	s.syncPhaseLocked()
	if s.phase != PhaseAwaitingPayment || s.method != models.PaymentMethodMobileMoney {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: pas en attente d'un paiement mobile money", ErrIllegalTransition)
	}
	attempt := s.attempt
	if attempt == nil || attempt.Reference != reference {
		s.mu.Unlock()
		return nil, ErrUnknownReference
	}
	// Le panier ne doit pas avoir bougé depuis l'initiation : le client a
	// payé le montant initié, pas le panier courant
	if minor := cartAmountMinor(s.Cart.Snapshot().Total); minor != attempt.AmountMinor {
		s.attempt = nil
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d unités mineures au panier, %d initiées", ErrCartChanged, minor, attempt.AmountMinor)
	}
	s.mu.Unlock()

	verif, err := s.coord.VerifyMobileMoney(ctx, attempt)
	if err != nil {
		// Tentative expirée : on la purge pour forcer une nouvelle initiation
		if errors.Is(err, ErrAttemptExpired) {
			s.mu.Lock()
			s.attempt = nil
			s.mu.Unlock()
		}
		return nil, err
	}

	// Le montant vérifié doit correspondre au montant initié
	if verif.Amount != 0 && verif.Amount != attempt.AmountMinor {
		return nil, &GatewayVerificationError{
			Reference:       attempt.Reference,
			GatewayResponse: fmt.Sprintf("montant vérifié %d ≠ montant initié %d", verif.Amount, attempt.AmountMinor),
		}
	}

	s.mu.Lock()
	// Re-contrôle après l'appel réseau : un ajout pendant la vérification
	// invaliderait aussi la correspondance panier/montant
	if minor := cartAmountMinor(s.Cart.Snapshot().Total); minor != attempt.AmountMinor {
		s.attempt = nil
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d unités mineures au panier, %d initiées", ErrCartChanged, minor, attempt.AmountMinor)
	}
	s.confirmed = &ConfirmedPayment{
		Method:    models.PaymentMethodMobileMoney,
		Amount:    float64(attempt.AmountMinor) / 100,
		Reference: attempt.Reference,
		PaidAt:    time.Now(),
	}
	s.confirmedItems = s.Cart.Items()
	s.attempt = nil
	s.phase = PhasePaymentConfirmed
	s.mu.Unlock()

	return s.persistOrder(ctx)
}

// RetryOrder retente la persistance avec les mêmes données, sans ré-encaisser
func (s *Session) RetryOrder(ctx context.Context) (*models.Order, error) {
	if err := s.beginOp(); err != nil {
		return nil, err
	}
	defer s.endOp()

	s.mu.Lock()
	if s.phase != PhasePaymentConfirmed || s.confirmed == nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: aucun paiement confirmé en attente d'enregistrement", ErrIllegalTransition)
	}
	s.mu.Unlock()

	return s.persistOrder(ctx)
}

// persistOrder — exactement un écrit réseau par invocation, jamais invocable
// avant PAYMENT_CONFIRMED par construction. Succès → COMPLETED, panier vidé.
// Échec → retour en PAYMENT_CONFIRMED, reprise manuelle possible.
func (s *Session) persistOrder(ctx context.Context) (*models.Order, error) {
	s.mu.Lock()
	if !CanTransition(s.phase, PhaseOrderPersisting) {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s → %s", ErrIllegalTransition, s.phase, PhaseOrderPersisting)
	}
	s.phase = PhaseOrderPersisting
	// Articles facturés = photo prise à la confirmation, jamais le panier
	// courant : une reprise après échec repart des mêmes données
	req := OrderRequest{
		Customer:      s.customer,
		Items:         s.confirmedItems,
		TotalAmount:   s.confirmed.Amount,
		PaymentMethod: s.confirmed.Method,
		PaymentStatus: models.PaymentStatusCompleted,
		Reference:     s.reference,
	}
	s.mu.Unlock()

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		s.mu.Lock()
		s.phase = PhasePaymentConfirmed
		s.mu.Unlock()
		log.Printf("❌ Paiement encaissé mais commande NON enregistrée (session %s): %v", s.ID, err)
		return nil, err
	}

	// Marque la référence comme consommée pour refuser un double enregistrement
	if s.ledger != nil {
		if fresh, lerr := s.ledger.MarkCompleted(ctx, req.Reference); lerr != nil {
			log.Printf("⚠️ Registre d'idempotence indisponible pour %s: %v", req.Reference, lerr)
		} else if !fresh {
			log.Printf("🔁 Référence %s déjà enregistrée — commande probablement dupliquée côté backend", req.Reference)
		}
	}

	s.mu.Lock()
	s.order = order
	s.phase = PhaseCompleted
	s.Cart.Clear()
	s.mu.Unlock()

	log.Printf("✅ Commande %s enregistrée (%.2f, %s) pour la session %s", order.RefCode, order.TotalAmount, order.PaymentMethod, s.ID)
	return order, nil
}

// beginOp — garde de ré-entrance : une seule action asynchrone à la fois
// par session (équivalent du bouton désactivé pendant l'appel)
func (s *Session) beginOp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrOperationInProgress
	}
	s.busy = true
	return nil
}

func (s *Session) endOp() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// cartAmountMinor convertit un total panier en unités mineures, comme à
// l'initiation de la collecte
func cartAmountMinor(total float64) int64 {
	return int64(math.Round(total * 100))
}
