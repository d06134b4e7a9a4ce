package models

import "time"

// Order is the immutable record created when a cart is checked out.
// CartID keeps a reference to the consumed cart; the cart row itself
// is deleted in the same transaction that creates the order.
type Order struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string    `json:"user_id" gorm:"index;type:varchar(36)"`
	CartID         *string   `json:"cart_id,omitempty" gorm:"type:varchar(36)"`
	PaymentDetails string    `json:"payment_details" gorm:"type:text"` // opaque blob, not interpreted
	OrderDate      time.Time `json:"order_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
