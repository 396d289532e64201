package models

// CartItem représente un article du panier en cours d'encaissement
type CartItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// CustomerInfo — infos client collectées par le panneau de caisse.
// Le nom est requis pour finaliser une commande, le téléphone uniquement
// pour le paiement mobile money.
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// PricingSnapshot est dérivé du panier, jamais stocké indépendamment
// de la commande qu'il produit
type PricingSnapshot struct {
	Subtotal float64 `json:"subtotal"`
	TaxRate  float64 `json:"tax_rate"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
