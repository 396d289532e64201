package pricing

import (
	"math"

	"vendra_back_end/internal/models"
)

// TaxRate — TVA fixe de 12.5%, non configurable pour l'instant
const TaxRate = 0.125

// ComputeSnapshot recalcule sous-total, taxe et total depuis le panier.
// Un prix invalide (négatif, NaN, Inf) est ramené à 0, une quantité
// manquante vaut 1. Aucun total en cache ne fait autorité : on redérive
// à chaque mutation du panier.
func ComputeSnapshot(items []models.CartItem) models.PricingSnapshot {
	var subtotal float64
	for _, item := range items {
		price := item.Price
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal += price * float64(qty)
	}

	tax := subtotal * TaxRate
	return models.PricingSnapshot{
		Subtotal: subtotal,
		TaxRate:  TaxRate,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// ComputeChange calcule la monnaie à rendre. L'appelant doit vérifier
// que le résultat est ≥ 0 avant de valider le paiement cash.
func ComputeChange(cashAmount, total float64) float64 {
	return cashAmount - total
}
