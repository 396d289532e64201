package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vendra_back_end/internal/cache"
)

// Toast — notification affichée par le panneau de caisse
type Toast struct {
	Type    string    `json:"type"` // success | error | info
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier — collaborateur de notification, fire-and-forget : aucune valeur
// de retour n'est consommée par la logique d'encaissement
type Notifier interface {
	Success(terminalID, message string)
	Error(terminalID, message string)
	Info(terminalID, message string)
}

// LogNotifier — repli quand Redis est absent (tests, dev sans cache)
type LogNotifier struct{}

func (LogNotifier) Success(terminalID, message string) {
	log.Printf("✅ [%s] %s", terminalID, message)
}

func (LogNotifier) Error(terminalID, message string) {
	log.Printf("❌ [%s] %s", terminalID, message)
}

func (LogNotifier) Info(terminalID, message string) {
	log.Printf("ℹ️ [%s] %s", terminalID, message)
}

// RedisNotifier publie les toasts sur le canal pub/sub du terminal ;
// le WebSocket du panneau les relaie au navigateur
type RedisNotifier struct{}

func NewRedisNotifier() *RedisNotifier {
	return &RedisNotifier{}
}

func (n *RedisNotifier) Success(terminalID, message string) {
	n.publish(terminalID, "success", message)
}

func (n *RedisNotifier) Error(terminalID, message string) {
	n.publish(terminalID, "error", message)
}

func (n *RedisNotifier) Info(terminalID, message string) {
	n.publish(terminalID, "info", message)
}

func (n *RedisNotifier) publish(terminalID, kind, message string) {
	payload, err := json.Marshal(Toast{Type: kind, Message: message, At: time.Now()})
	if err != nil {
		return
	}
	if err := cache.PublishToast(context.Background(), terminalID, payload); err != nil {
		// Fire-and-forget : on logge, on ne bloque jamais l'encaissement
		log.Printf("⚠️ Toast non publié pour %s: %v", terminalID, err)
	}
}
