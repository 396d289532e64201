package checkout

// Phase — état unique de la machine d'encaissement. Une seule variable
// d'état taguée plutôt que des booléens séparés : impossible d'être à la
// fois "terminé" et "en attente de cash".
type Phase string

const (
	PhaseIdle             Phase = "IDLE"
	PhaseSelectingPayment Phase = "SELECTING_PAYMENT"
	PhaseAwaitingPayment  Phase = "AWAITING_PAYMENT"
	PhasePaymentConfirmed Phase = "PAYMENT_CONFIRMED"
	PhaseOrderPersisting  Phase = "ORDER_PERSISTING"
	PhaseCompleted        Phase = "COMPLETED"
)

// IsTerminal — Completed est terminal pour la session
func (p Phase) IsTerminal() bool {
	return p == PhaseCompleted
}

func (p Phase) String() string {
	return string(p)
}

var allowedTransitions = map[Phase][]Phase{
	PhaseIdle:             {PhaseSelectingPayment},
	PhaseSelectingPayment: {PhaseAwaitingPayment, PhaseIdle},
	PhaseAwaitingPayment:  {PhasePaymentConfirmed, PhaseSelectingPayment, PhaseIdle},
	// Une fois le paiement confirmé, on ne revient JAMAIS à la sélection :
	// l'argent est encaissé, seule la persistance de la commande peut échouer.
	PhasePaymentConfirmed: {PhaseOrderPersisting},
	PhaseOrderPersisting:  {PhaseCompleted, PhasePaymentConfirmed},
	PhaseCompleted:        {},
}

// CanTransition vérifie qu'un passage d'état est autorisé
func CanTransition(from, to Phase) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
