package checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientPayment — cash reçu < total. Local, jamais envoyé au backend.
	ErrInsufficientPayment = errors.New("montant reçu insuffisant")

	// ErrMissingCustomerInfo — nom ou téléphone absent au moment où l'action en a besoin
	ErrMissingCustomerInfo = errors.New("informations client manquantes")

	// ErrOperationInProgress — un appel réseau est déjà en cours pour cette session
	// (anti double-clic sur le bouton de confirmation)
	ErrOperationInProgress = errors.New("une opération est déjà en cours")

	// ErrIllegalTransition — transition d'état de caisse non autorisée
	ErrIllegalTransition = errors.New("transition d'état de caisse non autorisée")

	// ErrEmptyCart — rien à encaisser
	ErrEmptyCart = errors.New("panier vide, rien à encaisser")

	// ErrAttemptExpired — la tentative de paiement mobile money a dépassé son délai
	ErrAttemptExpired = errors.New("tentative de paiement expirée, veuillez réessayer")

	// ErrUnknownReference — le callback ne correspond à aucune tentative en cours
	ErrUnknownReference = errors.New("référence de paiement inconnue")

	// ErrCartChanged — le panier a bougé entre l'initiation du paiement et sa
	// confirmation : le montant collecté ne correspond plus au panier
	ErrCartChanged = errors.New("le panier a changé depuis l'initiation du paiement, relancez la collecte")
)

// GatewayInitiationError — impossible de démarrer la collecte mobile money.
// Récupérable : l'utilisateur peut réessayer ou passer en cash.
type GatewayInitiationError struct {
	Err error
}

func (e *GatewayInitiationError) Error() string {
	return fmt.Sprintf("impossible de démarrer le paiement mobile money: %v", e.Err)
}

func (e *GatewayInitiationError) Unwrap() error { return e.Err }

// GatewayVerificationError — la passerelle a signalé une transaction que la
// vérification côté serveur n'a PAS confirmée. À traiter comme paiement NON
// confirmé, jamais comme confirmé-mais-non-enregistré.
type GatewayVerificationError struct {
	Reference       string
	GatewayResponse string
}

func (e *GatewayVerificationError) Error() string {
	return fmt.Sprintf("vérification du paiement %s échouée (réponse passerelle: %q)", e.Reference, e.GatewayResponse)
}
