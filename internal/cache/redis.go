package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis initialise la connexion Redis
func InitRedis() error {
	redisHost := os.Getenv("REDIS_HOST")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	if redisHost == "" {
		return fmt.Errorf("REDIS_HOST non configuré")
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         redisHost,
		Password:     redisPassword,
		DB:           0, // Base de données par défaut
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Test de connexion
	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("impossible de se connecter à Redis: %v", err)
	}

	log.Println("✅ Redis connecté avec succès")
	return nil
}

// CloseRedis ferme la connexion Redis
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// --- Registre d'idempotence des encaissements ---

// referenceTTL — au-delà, une référence consommée peut être oubliée
const referenceTTL = 24 * time.Hour

// MarkReferenceCompleted enregistre une référence d'encaissement consommée.
// Retourne false si elle était déjà présente (double enregistrement).
func MarkReferenceCompleted(c context.Context, reference string) (bool, error) {
	key := fmt.Sprintf("checkout:ref:%s", reference)
	return RedisClient.SetNX(c, key, "completed", referenceTTL).Result()
}

// IsReferenceCompleted vérifie si une référence a déjà été consommée
func IsReferenceCompleted(c context.Context, reference string) bool {
	key := fmt.Sprintf("checkout:ref:%s", reference)
	exists, err := RedisClient.Exists(c, key).Result()
	if err != nil {
		log.Printf("⚠️ Erreur vérification référence: %v", err)
		return false
	}
	return exists > 0
}

// --- Notifications toast (pub/sub vers les panneaux de caisse) ---

// PublishToast publie une notification sur le canal du terminal
func PublishToast(c context.Context, terminalID string, payload []byte) error {
	return RedisClient.Publish(c, "toasts:"+terminalID, payload).Err()
}

// SubscribeToasts s'abonne au canal de notifications d'un terminal
func SubscribeToasts(c context.Context, terminalID string) *redis.PubSub {
	return RedisClient.Subscribe(c, "toasts:"+terminalID)
}

// --- Cache générique ---

// SetCache stocke une valeur dans le cache
func SetCache(key string, value interface{}, duration time.Duration) error {
	return RedisClient.Set(ctx, key, value, duration).Err()
}

// GetCache récupère une valeur du cache
func GetCache(key string) (string, error) {
	return RedisClient.Get(ctx, key).Result()
}

// DeleteCache supprime une clé du cache
func DeleteCache(key string) error {
	return RedisClient.Del(ctx, key).Err()
}

// --- Rate Limiting Global ---

// IncrementRateLimit incrémente le compteur de rate limit
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := RedisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit récupère le compteur de rate limit
func GetRateLimit(key string) (int64, error) {
	val, err := RedisClient.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}
