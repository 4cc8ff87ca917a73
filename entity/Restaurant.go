package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name           string `gorm:"size:200;not null" json:"name"`
	Description    string `json:"description"`
	OpeningTime    string `gorm:"size:5" json:"openingTime"` // HH:MM
	ClosingTime    string `gorm:"size:5" json:"closingTime"`
	IframeLocation string `json:"iframeLocation"`
	Location       string `json:"location"`
	Featured       bool   `gorm:"index" json:"featured"`

	OwnerID uint `gorm:"index;not null" json:"ownerId"`
	Owner   User `json:"-"`

	Cuisines []Cuisine `gorm:"many2many:restaurant_cuisines;" json:"cuisines"`
	Dishes   []Dish    `gorm:"constraint:OnDelete:CASCADE;" json:"dishes,omitempty"`
	Reviews  []Review  `json:"-"`
}
