package cache

import "context"

// Ledger — adaptateur Redis du registre d'idempotence du checkout
type Ledger struct{}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) MarkCompleted(c context.Context, reference string) (bool, error) {
	return MarkReferenceCompleted(c, reference)
}
