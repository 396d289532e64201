package handlers

import (
	"log"
	"net/http"

	"vendra_back_end/internal/receipt"

	"github.com/gin-gonic/gin"
)

//
// 🖨️ GET /api/checkout/receipt — payload imprimable du dernier encaissement
//
func GetReceipt(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	state := registry.Get(terminalID).State()
	if state.Order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune commande terminée pour ce terminal"})
		return
	}

	r, err := receipt.Build(state.Order, state.Confirmed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du reçu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"receipt": r,
		"html":    receipt.GenerateReceiptHTML(r),
	})
}

//
// 📧 POST /api/checkout/receipt/email — envoyer une copie du reçu
//
func EmailReceipt(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		To string `json:"to" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse e-mail invalide"})
		return
	}

	state := registry.Get(terminalID).State()
	if state.Order == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune commande terminée pour ce terminal"})
		return
	}

	r, err := receipt.Build(state.Order, state.Confirmed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du reçu"})
		return
	}

	html := receipt.GenerateReceiptHTML(r)

	// Le PDF est un bonus : s'il échoue, l'e-mail part sans pièce jointe
	pdf, err := receipt.RenderReceiptPDF(html)
	if err != nil {
		log.Printf("❌ Erreur génération PDF reçu: %v", err)
		pdf = nil
	}

	go func() {
		if err := receipt.SendReceiptEmail(input.To, r.RefCode, html, pdf); err != nil {
			log.Printf("❌ Erreur envoi reçu par e-mail: %v", err)
			notifier.Error(terminalID, "Envoi du reçu par e-mail échoué")
		} else {
			log.Println("📧 Reçu envoyé à", input.To)
			notifier.Success(terminalID, "Reçu envoyé à "+input.To)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Envoi du reçu en cours"})
}
