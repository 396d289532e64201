package handlers

import (
	"net/http"
	"os"

	"vendra_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

//
// 🔐 POST /api/auth/terminal — enregistrement d'un terminal de caisse
//
func RegisterTerminal(c *gin.Context) {
	var input struct {
		TerminalID      string `json:"terminal_id" binding:"required"`
		Cashier         string `json:"cashier" binding:"required"`
		RegistrationKey string `json:"registration_key" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	expected := os.Getenv("TERMINAL_REGISTRATION_KEY")
	if expected == "" || input.RegistrationKey != expected {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Clé d'enregistrement invalide"})
		return
	}

	token, err := utils.GenerateTerminalToken(input.TerminalID, input.Cashier)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       token,
		"terminal_id": input.TerminalID,
	})
}

//
// ❤️ GET /health
//
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
