package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendra_back_end/internal/cache"
	"vendra_back_end/internal/notify"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// NotificationsWebSocket relaie les toasts du terminal vers le panneau de
// caisse en temps réel
func NotificationsWebSocket(c *gin.Context) {
	terminalID := c.GetString("terminal_id")
	if terminalID == "" {
		c.JSON(401, gin.H{"error": "Non authentifié"})
		return
	}

	if cache.RedisClient == nil {
		c.JSON(503, gin.H{"error": "Notifications indisponibles sans Redis"})
		return
	}

	// Upgrade vers WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	// S'abonner au canal Redis de ce terminal
	pubsub := cache.SubscribeToasts(ctx, terminalID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	// Envoyer un message de connexion
	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Notifications de caisse activées",
	})

	// Boucle d'écoute
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var toast notify.Toast
			if err := json.Unmarshal([]byte(msg.Payload), &toast); err != nil {
				continue
			}

			if err := conn.WriteJSON(toast); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
