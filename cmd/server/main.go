package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"vendra_back_end/internal/cache"
	"vendra_back_end/internal/checkout"
	"vendra_back_end/internal/clients"
	"vendra_back_end/internal/config"
	"vendra_back_end/internal/handlers"
	"vendra_back_end/internal/notify"
	"vendra_back_end/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	backendURL := os.Getenv("BACKEND_API_URL")
	if backendURL == "" {
		log.Fatal("❌ BACKEND_API_URL manquant : impossible de joindre le backend de vente")
	}

	backendToken := os.Getenv("BACKEND_API_TOKEN")
	if backendToken == "" {
		log.Fatal("❌ BACKEND_API_TOKEN manquant : le backend exige un bearer token")
	}
	tokenSource := func() (string, error) { return backendToken, nil }

	// Redis : registre d'idempotence + rate limits + toasts
	var notifier notify.Notifier = notify.LogNotifier{}
	var ledger checkout.ReferenceLedger
	if err := cache.InitRedis(); err != nil {
		log.Printf("⚠️ Redis indisponible (%v) — toasts en mode log, pas de registre d'idempotence", err)
	} else {
		notifier = notify.NewRedisNotifier()
		ledger = cache.NewLedger()
	}

	ordersClient := clients.NewOrdersClient(backendURL, tokenSource)
	paystackClient := clients.NewPaystackClient(backendURL, os.Getenv("PAYMENT_CALLBACK_URL"), tokenSource)

	coordinator := checkout.NewCoordinator(paystackClient, gatewayTimeout())
	registry := checkout.NewRegistry(coordinator, ordersClient, ledger)

	handlers.Setup(registry, notifier)

	r := gin.Default()
	r.Use(cors.Default())
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Vendra POS lancé sur le port", port)
	r.Run(":" + port)
}

// gatewayTimeout — délai d'expiration des collectes mobile money en attente
func gatewayTimeout() time.Duration {
	if raw := os.Getenv("GATEWAY_TIMEOUT_MIN"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
		log.Printf("⚠️ GATEWAY_TIMEOUT_MIN invalide (%q), on garde le défaut", raw)
	}
	return checkout.DefaultAttemptTimeout
}
