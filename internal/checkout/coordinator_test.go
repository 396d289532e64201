package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"vendra_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmCash_SufficientAmount(t *testing.T) {
	co := NewCoordinator(&MockGateway{}, time.Minute)

	change, err := co.ConfirmCash(60, 56.25)

	require.NoError(t, err)
	assert.InDelta(t, 3.75, change, 1e-2)
}

func TestConfirmCash_ExactAmount(t *testing.T) {
	co := NewCoordinator(&MockGateway{}, time.Minute)

	change, err := co.ConfirmCash(56.25, 56.25)

	require.NoError(t, err)
	assert.InDelta(t, 0.0, change, 1e-2)
}

func TestConfirmCash_InsufficientAmount(t *testing.T) {
	co := NewCoordinator(&MockGateway{}, time.Minute)

	_, err := co.ConfirmCash(40, 56.25)

	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestInitiateMobileMoney_RequiresPhone(t *testing.T) {
	gateway := &MockGateway{}
	co := NewCoordinator(gateway, time.Minute)

	_, _, err := co.InitiateMobileMoney(context.Background(), "  ", 56.25)

	assert.ErrorIs(t, err, ErrMissingCustomerInfo)
	// Aucun appel passerelle avant validation du téléphone
	assert.Zero(t, gateway.InitCalls)
}

func TestInitiateMobileMoney_MinorUnitsAndSyntheticEmail(t *testing.T) {
	gateway := &MockGateway{}
	co := NewCoordinator(gateway, time.Minute)

	attempt, init, err := co.InitiateMobileMoney(context.Background(), "+233 24 123 4567", 56.25)

	require.NoError(t, err)
	assert.Equal(t, int64(5625), gateway.LastInit.AmountMinor)
	assert.Equal(t, "233241234567@vendra.pos", gateway.LastInit.Email)
	assert.NotEmpty(t, attempt.Reference)
	assert.Equal(t, attempt.Reference, init.Reference)
	assert.True(t, attempt.Deadline.After(attempt.StartedAt))
}

func TestInitiateMobileMoney_UniqueReferences(t *testing.T) {
	gateway := &MockGateway{}
	co := NewCoordinator(gateway, time.Minute)

	a1, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 10)
	require.NoError(t, err)
	a2, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 10)
	require.NoError(t, err)

	assert.NotEqual(t, a1.Reference, a2.Reference)
}

func TestInitiateMobileMoney_GatewayFailure(t *testing.T) {
	gateway := &MockGateway{InitErr: errors.New("connexion refusée")}
	co := NewCoordinator(gateway, time.Minute)

	_, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 10)

	var initErr *GatewayInitiationError
	assert.ErrorAs(t, err, &initErr)
}

func TestVerifyMobileMoney_Success(t *testing.T) {
	gateway := &MockGateway{
		VerifyResp: &models.PaymentVerification{Status: true, GatewayResponse: "Successful", Amount: 5625},
	}
	co := NewCoordinator(gateway, time.Minute)
	attempt, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 56.25)
	require.NoError(t, err)

	verif, err := co.VerifyMobileMoney(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, int64(5625), verif.Amount)
}

func TestVerifyMobileMoney_StatusFalseIsRejected(t *testing.T) {
	gateway := &MockGateway{
		VerifyResp: &models.PaymentVerification{Status: false, GatewayResponse: "Successful"},
	}
	co := NewCoordinator(gateway, time.Minute)
	attempt, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 56.25)
	require.NoError(t, err)

	_, err = co.VerifyMobileMoney(context.Background(), attempt)

	var verifErr *GatewayVerificationError
	assert.ErrorAs(t, err, &verifErr)
}

func TestVerifyMobileMoney_NonSuccessfulResponseIsRejected(t *testing.T) {
	gateway := &MockGateway{
		VerifyResp: &models.PaymentVerification{Status: true, GatewayResponse: "Declined"},
	}
	co := NewCoordinator(gateway, time.Minute)
	attempt, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 56.25)
	require.NoError(t, err)

	_, err = co.VerifyMobileMoney(context.Background(), attempt)

	var verifErr *GatewayVerificationError
	assert.ErrorAs(t, err, &verifErr)
	assert.Equal(t, "Declined", verifErr.GatewayResponse)
}

func TestVerifyMobileMoney_ExpiredAttempt(t *testing.T) {
	gateway := &MockGateway{}
	co := NewCoordinator(gateway, time.Nanosecond)
	attempt, _, err := co.InitiateMobileMoney(context.Background(), "0241234567", 56.25)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = co.VerifyMobileMoney(context.Background(), attempt)

	assert.ErrorIs(t, err, ErrAttemptExpired)
	// La tentative expirée n'est même pas envoyée en vérification
	assert.Zero(t, gateway.VerifyCalls)
}

func TestSynthesizeEmail_NoDigits(t *testing.T) {
	assert.Equal(t, "client@vendra.pos", SynthesizeEmail("abc"))
}
