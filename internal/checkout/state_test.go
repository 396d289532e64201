package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_HappyPath(t *testing.T) {
	assert.True(t, CanTransition(PhaseIdle, PhaseSelectingPayment))
	assert.True(t, CanTransition(PhaseSelectingPayment, PhaseAwaitingPayment))
	assert.True(t, CanTransition(PhaseAwaitingPayment, PhasePaymentConfirmed))
	assert.True(t, CanTransition(PhasePaymentConfirmed, PhaseOrderPersisting))
	assert.True(t, CanTransition(PhaseOrderPersisting, PhaseCompleted))
}

func TestCanTransition_RetryAfterPersistFailure(t *testing.T) {
	assert.True(t, CanTransition(PhaseOrderPersisting, PhasePaymentConfirmed))
}

func TestCanTransition_ChangeMethodBeforeConfirmation(t *testing.T) {
	assert.True(t, CanTransition(PhaseAwaitingPayment, PhaseSelectingPayment))
}

func TestCanTransition_NoRevertOnceConfirmed(t *testing.T) {
	// L'argent est encaissé : interdiction de revenir à la sélection
	assert.False(t, CanTransition(PhasePaymentConfirmed, PhaseSelectingPayment))
	assert.False(t, CanTransition(PhasePaymentConfirmed, PhaseAwaitingPayment))
	assert.False(t, CanTransition(PhasePaymentConfirmed, PhaseIdle))
}

func TestCanTransition_NoShortcuts(t *testing.T) {
	assert.False(t, CanTransition(PhaseSelectingPayment, PhasePaymentConfirmed))
	assert.False(t, CanTransition(PhaseAwaitingPayment, PhaseOrderPersisting))
	assert.False(t, CanTransition(PhaseAwaitingPayment, PhaseCompleted))
	assert.False(t, CanTransition(PhaseIdle, PhaseCompleted))
}

func TestCompletedIsTerminal(t *testing.T) {
	assert.True(t, PhaseCompleted.IsTerminal())
	assert.False(t, CanTransition(PhaseCompleted, PhaseIdle))
	assert.False(t, CanTransition(PhaseCompleted, PhaseSelectingPayment))
}
