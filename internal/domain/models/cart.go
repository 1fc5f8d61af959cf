package models

// CartItem — позиция корзины: снимок товара плюс количество и выбранный вариант.
// Ключ уникальности позиции — пара (ProductID, SelectedVariantID):
// один и тот же товар с разными вариантами даёт разные позиции.
type CartItem struct {
	Product
	Quantity          int    `json:"quantity"`
	SelectedVariantID string `json:"selectedVariantId,omitempty"`
}

// UnitPrice возвращает эффективную цену за единицу:
// базовая цена плюс модификатор выбранного варианта (0, если вариант не найден)
func (ci *CartItem) UnitPrice() float64 {
	price := ci.Price
	if ci.SelectedVariantID != "" {
		if v, ok := ci.VariantByID(ci.SelectedVariantID); ok {
			price += v.PriceModifier
		}
	}
	return price
}

// Subtotal возвращает стоимость позиции с учётом количества
func (ci *CartItem) Subtotal() float64 {
	return ci.UnitPrice() * float64(ci.Quantity)
}
