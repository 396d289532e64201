package checkout

import (
	"log"
	"sync"
)

// Registry — une session d'encaissement par terminal de caisse
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	coord  *Coordinator
	orders OrdersClient
	ledger ReferenceLedger
}

func NewRegistry(coord *Coordinator, orders OrdersClient, ledger ReferenceLedger) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		coord:    coord,
		orders:   orders,
		ledger:   ledger,
	}
}

// Get retourne la session du terminal telle quelle, en la créant au besoin.
// Une session COMPLETED reste consultable (reçu) jusqu'au prochain Active.
func (r *Registry) Get(terminalID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(terminalID)
}

// Active retourne une session utilisable pour encaisser : une session
// terminée est remplacée par une fraîche (nouvelle référence d'idempotence).
func (r *Registry) Active(terminalID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.getLocked(terminalID)
	if sess.State().Phase.IsTerminal() {
		log.Printf("🆕 Session terminée pour %s, on en ouvre une nouvelle", terminalID)
		sess = NewSession(terminalID, r.coord, r.orders, r.ledger)
		r.sessions[terminalID] = sess
	}
	return sess
}

func (r *Registry) getLocked(terminalID string) *Session {
	if sess, ok := r.sessions[terminalID]; ok {
		return sess
	}
	sess := NewSession(terminalID, r.coord, r.orders, r.ledger)
	r.sessions[terminalID] = sess
	return sess
}
