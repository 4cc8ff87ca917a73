package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"index;not null" json:"orderId"`
	Order   Order `json:"-"`

	DishID       uint   `json:"dishId"`
	RestaurantID uint   `gorm:"index" json:"restaurantId"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unitPrice"` // price at snapshot time
	Total        int64  `json:"total"`
}
