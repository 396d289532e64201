package middleware

import (
	"fmt"
	"net/http"
	"time"

	"vendra_back_end/internal/cache"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	CartMaxAdds         = 30 // ajouts panier par minute et par terminal
	CheckoutMaxAttempts = 10 // actions d'encaissement par minute et par terminal

	CartCooldown     = 1 * time.Minute
	CheckoutCooldown = 1 * time.Minute
)

// CartRateLimit limite les ajouts au panier (anti-spam scan)
func CartRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetString("terminal_id")
		if terminalID == "" || cache.RedisClient == nil {
			c.Next()
			return
		}

		key := "cart_add:" + terminalID

		requests, _ := cache.GetRateLimit(key)
		if requests >= CartMaxAdds {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Trop d'ajouts au panier. Ralentissez un peu",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		cache.IncrementRateLimit(key, CartCooldown)
		c.Next()
	}
}

// CheckoutRateLimit limite les actions d'encaissement par terminal
func CheckoutRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		terminalID := c.GetString("terminal_id")
		if terminalID == "" || cache.RedisClient == nil {
			c.Next()
			return
		}

		key := "checkout_actions:" + terminalID

		requests, _ := cache.GetRateLimit(key)
		if requests >= CheckoutMaxAttempts {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop d'actions d'encaissement. Réessayez dans %d secondes", 60),
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		cache.IncrementRateLimit(key, CheckoutCooldown)
		c.Next()
	}
}
