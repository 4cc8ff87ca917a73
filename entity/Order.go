package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CheckoutLine is one priced cart row frozen when checkout starts.
type CheckoutLine struct {
	DishID       uint   `json:"dishId"`
	RestaurantID uint   `json:"restaurantId"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unitPrice"`
	Quantity     int    `json:"quantity"`
	LineTotal    int64  `json:"lineTotal"`
}

type Order struct {
	gorm.Model
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `json:"-"`

	Status     OrderStatus `gorm:"size:16;index;not null;default:PENDING" json:"status"`
	TotalPrice int64       `json:"totalPrice"`
	Currency   string      `gorm:"size:3" json:"currency"`

	// nil จนกว่าจะได้ session จาก payment processor
	PaymentSessionID *string    `gorm:"uniqueIndex;size:255" json:"paymentSessionId,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`

	Snapshot datatypes.JSONType[[]CheckoutLine] `json:"-"`

	Items []OrderItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE;"`
}
