package models

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem is one catalog entry staff can add to an order.
type MenuItem struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Price        float64   `json:"price" db:"price"`
	Category     string    `json:"category" db:"category"`
	ImageURL     *string   `json:"image_url" db:"image_url"`
	IsAvailable  bool      `json:"is_available" db:"is_available"`
	Ingredients  string    `json:"ingredients" db:"ingredients"`
	Instructions string    `json:"instructions" db:"instructions"`
	Presentation string    `json:"presentation" db:"presentation"`
	ShelfLife    string    `json:"shelf_life" db:"shelf_life"`
	Packaging    *string   `json:"packaging" db:"packaging"`
	IsGlutenFree bool      `json:"is_gluten_free" db:"is_gluten_free"`
	IsSugarFree  bool      `json:"is_sugar_free" db:"is_sugar_free"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// MenuItemUpdate carries a partial edit; nil fields are left untouched.
type MenuItemUpdate struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Category     *string  `json:"category,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	IsAvailable  *bool    `json:"is_available,omitempty"`
	Ingredients  *string  `json:"ingredients,omitempty"`
	Instructions *string  `json:"instructions,omitempty"`
	Presentation *string  `json:"presentation,omitempty"`
	ShelfLife    *string  `json:"shelf_life,omitempty"`
	Packaging    *string  `json:"packaging,omitempty"`
	IsGlutenFree *bool    `json:"is_gluten_free,omitempty"`
	IsSugarFree  *bool    `json:"is_sugar_free,omitempty"`
}

// Apply merges the supplied fields onto the item.
func (u *MenuItemUpdate) Apply(item *MenuItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Price != nil {
		item.Price = *u.Price
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.ImageURL != nil {
		item.ImageURL = u.ImageURL
	}
	if u.IsAvailable != nil {
		item.IsAvailable = *u.IsAvailable
	}
	if u.Ingredients != nil {
		item.Ingredients = *u.Ingredients
	}
	if u.Instructions != nil {
		item.Instructions = *u.Instructions
	}
	if u.Presentation != nil {
		item.Presentation = *u.Presentation
	}
	if u.ShelfLife != nil {
		item.ShelfLife = *u.ShelfLife
	}
	if u.Packaging != nil {
		item.Packaging = u.Packaging
	}
	if u.IsGlutenFree != nil {
		item.IsGlutenFree = *u.IsGlutenFree
	}
	if u.IsSugarFree != nil {
		item.IsSugarFree = *u.IsSugarFree
	}
}
