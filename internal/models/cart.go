package models

import "gorm.io/gorm"

// CartItem is a single product/quantity line inside a cart.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID    string `json:"cart_id" gorm:"index;type:varchar(36)"`
	ProductID string `json:"product_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Cart is a user's in-progress, mutable collection of selected products.
// It is created empty, mutated by add-item calls, and deleted at checkout.
type Cart struct {
	ID         string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string     `json:"user_id" gorm:"index;type:varchar(36)"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
