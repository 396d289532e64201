package cart

import (
	"sync"

	"vendra_back_end/internal/models"
	"vendra_back_end/internal/pricing"
)

// Store maintient le panier d'une session de caisse. Purement en mémoire :
// fermer ou recharger la session perd le panier (pas de durabilité voulue).
type Store struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewStore() *Store {
	return &Store{}
}

// AddItem ajoute un article. Si un article avec le même product_id existe
// déjà, l'appel est un no-op (unicité par produit).
func (s *Store) AddItem(item models.CartItem) models.PricingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.items {
		if existing.ProductID == item.ProductID {
			return pricing.ComputeSnapshot(s.items)
		}
	}

	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.items = append(s.items, item)
	return pricing.ComputeSnapshot(s.items)
}

// RemoveItem retire l'article avec ce product_id. Pas d'erreur si absent.
func (s *Store) RemoveItem(productID string) models.PricingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	newItems := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			newItems = append(newItems, item)
		}
	}
	s.items = newItems
	return pricing.ComputeSnapshot(s.items)
}

// Clear vide complètement le panier
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items retourne une copie du contenu courant du panier
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Snapshot redérive le pricing depuis l'état courant du panier
func (s *Store) Snapshot() models.PricingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.ComputeSnapshot(s.items)
}

// IsEmpty indique si le panier est vide
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}
