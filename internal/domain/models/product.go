package models

// ProductVariant представляет вариант товара (цвет, размер и т.д.)
// PriceModifier — надбавка (или скидка) к базовой цене товара
type ProductVariant struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"` // например, "Blue / L"
	SKU           string  `json:"sku"`
	PriceModifier float64 `json:"priceModifier"`
	Stock         int     `json:"stock"`
}

// Product представляет товар каталога
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"` // базовая цена в USD
	Category    string           `json:"category"`
	Images      []string         `json:"images"`
	Stock       int              `json:"stock"`
	Rating      float64          `json:"rating"`
	Reviews     int              `json:"reviews"`
	Featured    bool             `json:"featured,omitempty"`
	Variants    []ProductVariant `json:"variants,omitempty"`
}

// VariantByID возвращает вариант товара по идентификатору
func (p *Product) VariantByID(id string) (*ProductVariant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}
