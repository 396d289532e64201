package handlers

import (
	"errors"
	"net/http"

	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/clients"
	"vendra_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🧾 GET /api/checkout — état courant du panneau de caisse
//
func GetCheckout(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Get(terminalID)
	c.JSON(http.StatusOK, sess.State())
}

//
// 👤 POST /api/checkout/customer
//
func SetCustomer(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sess := registry.Active(terminalID)
	sess.SetCustomer(models.CustomerInfo{Name: input.Name, Phone: input.Phone})
	c.JSON(http.StatusOK, sess.State())
}

//
// 💰 POST /api/checkout/method — choisir cash ou mobile_money
//
func SelectMethod(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Méthode de paiement requise"})
		return
	}

	sess := registry.Active(terminalID)
	if err := sess.SelectMethod(models.PaymentMethod(input.Method)); err != nil {
		respondCheckoutError(c, terminalID, err)
		return
	}

	c.JSON(http.StatusOK, sess.State())
}

//
// 💵 POST /api/checkout/cash — confirmer un paiement cash
//
func ConfirmCash(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	// Pointeur : un encaissement à 0 est légitime (panier à total nul),
	// seule l'absence du champ est une erreur
	var input struct {
		CashAmount *float64 `json:"cash_amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Montant reçu requis"})
		return
	}

	sess := registry.Active(terminalID)
	result, err := sess.ConfirmCash(c.Request.Context(), *input.CashAmount)
	if err != nil {
		// Paiement déjà encaissé mais commande non sauvée : le résultat
		// partiel (monnaie à rendre) accompagne l'erreur
		var orderErr *clients.OrderCreationError
		if errors.As(err, &orderErr) && result != nil {
			notifier.Error(terminalID, "Paiement encaissé mais commande NON enregistrée — réessayez l'enregistrement, n'encaissez pas à nouveau")
			c.JSON(http.StatusBadGateway, gin.H{
				"error":             orderErr.Error(),
				"code":              "order_not_saved",
				"payment_confirmed": true,
				"change":            result.Change,
				"state":             sess.State(),
			})
			return
		}
		respondCheckoutError(c, terminalID, err)
		return
	}

	notifier.Success(terminalID, "Paiement cash confirmé, commande enregistrée")
	c.JSON(http.StatusOK, gin.H{
		"message": "Encaissement terminé",
		"change":  result.Change,
		"order":   result.Order,
		"state":   sess.State(),
	})
}

//
// 📲 POST /api/checkout/momo/init — démarrer la collecte mobile money
//
func InitMobileMoney(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Active(terminalID)
	init, err := sess.InitiateMobileMoney(c.Request.Context())
	if err != nil {
		respondCheckoutError(c, terminalID, err)
		return
	}

	notifier.Info(terminalID, "Collecte mobile money ouverte, en attente du client")
	c.JSON(http.StatusOK, gin.H{
		"authorization_url": init.AuthorizationURL,
		"access_code":       init.AccessCode,
		"reference":         init.Reference,
		"state":             sess.State(),
	})
}

//
// ✅ POST /api/checkout/momo/confirm — callback succès du popup
//
func ConfirmMobileMoney(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		Reference string `json:"reference" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Référence requise"})
		return
	}

	sess := registry.Active(terminalID)
	order, err := sess.ConfirmMobileMoney(c.Request.Context(), input.Reference)
	if err != nil {
		respondCheckoutError(c, terminalID, err)
		return
	}

	notifier.Success(terminalID, "Paiement mobile money vérifié, commande enregistrée")
	c.JSON(http.StatusOK, gin.H{
		"message": "Encaissement terminé",
		"order":   order,
		"state":   sess.State(),
	})
}

//
// 🚫 POST /api/checkout/momo/cancel — callback fermeture du popup
//
func CancelMobileMoney(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Active(terminalID)
	sess.CancelMobileMoney()

	notifier.Info(terminalID, "Paiement annulé par le client, vous pouvez réessayer")
	c.JSON(http.StatusOK, gin.H{
		"message": "Collecte annulée, paiement non confirmé",
		"state":   sess.State(),
	})
}

//
// 🔁 POST /api/checkout/order/retry — retenter l'enregistrement de la commande
//
func RetryOrder(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Active(terminalID)
	order, err := sess.RetryOrder(c.Request.Context())
	if err != nil {
		respondCheckoutError(c, terminalID, err)
		return
	}

	notifier.Success(terminalID, "Commande enregistrée")
	c.JSON(http.StatusOK, gin.H{
		"message": "Commande enregistrée",
		"order":   order,
		"state":   sess.State(),
	})
}

//
// ♻️ POST /api/checkout/reset — fermeture du panneau (panier conservé)
//
func ResetPanel(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Get(terminalID)
	if err := sess.Reset(); err != nil {
		respondCheckoutError(c, terminalID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panneau réinitialisé",
		"state":   sess.State(),
	})
}

// respondCheckoutError traduit la taxonomie d'erreurs en réponses HTTP et
// toasts actionnables. Aucune erreur ne ferme le panneau ni ne le fait
// planter : la session reste dans un état cohérent avec ce qui a réellement
// réussi.
func respondCheckoutError(c *gin.Context, terminalID string, err error) {
	var initErr *checkout.GatewayInitiationError
	var verifErr *checkout.GatewayVerificationError
	var orderErr *clients.OrderCreationError

	switch {
	case errors.Is(err, checkout.ErrInsufficientPayment):
		notifier.Error(terminalID, "Montant reçu insuffisant, corrigez le montant saisi")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "insufficient_payment"})

	case errors.Is(err, checkout.ErrMissingCustomerInfo):
		notifier.Error(terminalID, "Nom du client (et téléphone pour le mobile money) requis")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "missing_customer_info"})

	case errors.Is(err, checkout.ErrOperationInProgress):
		notifier.Info(terminalID, "Une opération est déjà en cours, patientez")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "operation_in_progress"})

	case errors.Is(err, checkout.ErrAttemptExpired):
		notifier.Error(terminalID, "Tentative de paiement expirée, relancez la collecte")
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error(), "code": "attempt_expired"})

	case errors.Is(err, checkout.ErrUnknownReference):
		notifier.Error(terminalID, "Référence de paiement inconnue, relancez la collecte")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "unknown_reference"})

	case errors.Is(err, checkout.ErrEmptyCart):
		notifier.Info(terminalID, "Ajoutez des articles avant d'encaisser")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "empty_cart"})

	case errors.Is(err, checkout.ErrCartChanged):
		notifier.Error(terminalID, "Le panier a changé pendant le paiement — relancez la collecte")
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "cart_changed"})

	case errors.As(err, &orderErr):
		// Le cas le plus sévère : argent encaissé, commande non sauvée.
		// Message distinct de "paiement échoué", jamais de retour silencieux
		// à la sélection de méthode.
		notifier.Error(terminalID, "Paiement encaissé mais commande NON enregistrée — réessayez l'enregistrement ou prévenez un responsable")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":             orderErr.Error(),
			"code":              "order_not_saved",
			"payment_confirmed": true,
			"field_errors":      orderErr.Fields,
		})

	case errors.As(err, &verifErr):
		notifier.Error(terminalID, "Paiement NON confirmé par la passerelle — rien n'a été encaissé, réessayez")
		c.JSON(http.StatusBadRequest, gin.H{"error": verifErr.Error(), "code": "verification_failed"})

	case errors.As(err, &initErr):
		notifier.Error(terminalID, "Impossible de démarrer le mobile money — réessayez ou passez en cash")
		c.JSON(http.StatusBadGateway, gin.H{"error": initErr.Error(), "code": "gateway_init_failed"})

	case errors.Is(err, checkout.ErrIllegalTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": "illegal_transition"})

	default:
		notifier.Error(terminalID, "Erreur inattendue pendant l'encaissement")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
