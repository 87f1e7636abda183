package models

// Sweet is a catalog item.
type Sweet struct {
	ID          ID      `json:"_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// SweetInput is the payload for creating a sweet.
type SweetInput struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// SweetUpdate carries the fields an admin may change; nil fields are omitted.
type SweetUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// LowStockThreshold is the highest quantity still reported as low stock.
const LowStockThreshold = 5

// StockStatus returns the label shown next to a sweet's quantity.
func StockStatus(quantity int) string {
	switch {
	case quantity <= 0:
		return "Out of Stock"
	case quantity <= LowStockThreshold:
		return "Low Stock"
	default:
		return "In Stock"
	}
}

// SweetCategories are the categories offered when adding a sweet.
var SweetCategories = []string{"Chocolate", "Candy", "Gummy", "Lollipop", "Hard Candy", "Soft Candy", "Other"}

// DefaultCategory is preselected in the add form.
const DefaultCategory = "Chocolate"
