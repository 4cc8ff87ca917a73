package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId" gorm:"uniqueIndex:idx_cart_dish"`
	Cart   Cart `json:"-"`

	DishID uint `json:"dishId" gorm:"uniqueIndex:idx_cart_dish"`
	Dish   Dish `json:"dish"`

	Quantity int `json:"quantity" gorm:"not null;default:1"`
}

// Subtotal is computed at read time; prices are never stored on the cart.
func (i *CartItem) Subtotal() int64 {
	return i.Dish.Price * int64(i.Quantity)
}
