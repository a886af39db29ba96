package coupon

import "github.com/google/uuid"

// Cart is the checkout-time cart contract consumed from collaborators.
type Cart struct {
	Items    []CartItem
	Subtotal float64
}

type CartItem struct {
	ProductID  uuid.UUID
	SKU        string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// ContainsAnySKU reports whether at least one cart line matches the set.
func (c Cart) ContainsAnySKU(skus []string) bool {
	if len(skus) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(skus))
	for _, s := range skus {
		set[s] = struct{}{}
	}
	for _, item := range c.Items {
		if _, ok := set[item.SKU]; ok {
			return true
		}
	}
	return false
}
