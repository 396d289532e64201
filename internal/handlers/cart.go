package handlers

import (
	"net/http"

	"vendra_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Get(terminalID)
	c.JSON(http.StatusOK, gin.H{
		"items":   sess.Cart.Items(),
		"pricing": sess.Cart.Snapshot(),
	})
}

//
// 🟢 POST /api/cart/add
//
func AddToCart(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	var input struct {
		ProductID string  `json:"product_id" binding:"required"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
		Quantity  int     `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sess := registry.Active(terminalID)
	snapshot := sess.Cart.AddItem(models.CartItem{
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
		Quantity:  input.Quantity,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Article ajouté au panier",
		"items":   sess.Cart.Items(),
		"pricing": snapshot,
	})
}

//
// ❌ DELETE /api/cart/item/:productId
//
func RemoveFromCart(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	productID := c.Param("productId")
	sess := registry.Active(terminalID)
	snapshot := sess.Cart.RemoveItem(productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Article retiré du panier",
		"items":   sess.Cart.Items(),
		"pricing": snapshot,
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	sess := registry.Active(terminalID)
	sess.Cart.Clear()

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
