package entity

import (
	"gorm.io/gorm"
)

type Cuisine struct {
	gorm.Model
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Restaurants []Restaurant `gorm:"many2many:restaurant_cuisines;" json:"-"`
}
