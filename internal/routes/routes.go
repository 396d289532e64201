package routes

import (
	"vendra_back_end/internal/handlers"
	"vendra_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
	r.POST("/api/auth/terminal", handlers.RegisterTerminal)

	api := r.Group("/api", middleware.AuthRequired())

	// Panier
	cart := api.Group("/cart")
	cart.GET("", handlers.GetCart)
	cart.POST("/add", middleware.CartRateLimit(), handlers.AddToCart)
	cart.DELETE("/item/:productId", handlers.RemoveFromCart)
	cart.DELETE("", handlers.ClearCart)

	// Encaissement
	checkout := api.Group("/checkout")
	checkout.GET("", handlers.GetCheckout)
	checkout.POST("/customer", handlers.SetCustomer)
	checkout.POST("/method", handlers.SelectMethod)
	checkout.POST("/cash", middleware.CheckoutRateLimit(), handlers.ConfirmCash)
	checkout.POST("/momo/init", middleware.CheckoutRateLimit(), handlers.InitMobileMoney)
	checkout.POST("/momo/confirm", handlers.ConfirmMobileMoney)
	checkout.POST("/momo/cancel", handlers.CancelMobileMoney)
	checkout.POST("/order/retry", handlers.RetryOrder)
	checkout.POST("/reset", handlers.ResetPanel)
	checkout.GET("/receipt", handlers.GetReceipt)
	checkout.POST("/receipt/email", handlers.EmailReceipt)

	// Notifications temps réel
	r.GET("/ws/notifications", middleware.AuthRequired(), handlers.NotificationsWebSocket)
}
