package userorders

import "userorders/internal/models"

// BestProduct returns the product with the highest score. On equal scores the
// one seen first wins. An empty slice yields models.NoProduct.
func BestProduct(products []models.Product) models.Product {
	if len(products) == 0 {
		return models.NoProduct
	}
	best := products[0]
	for _, p := range products[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}
