package entity

import (
	"time"

	"gorm.io/gorm"
)

type Review struct {
	gorm.Model
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"reviewDate"`

	UserID       uint       `gorm:"uniqueIndex:idx_review_user_restaurant;not null" json:"userId"`
	User         User       `json:"-"`
	RestaurantID uint       `gorm:"uniqueIndex:idx_review_user_restaurant;not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
