package entity

import (
	"gorm.io/gorm"
)

const (
	RoleUser      = "user"
	RoleStaff     = "staff"
	RoleSuperuser = "superuser"
)

type User struct {
	gorm.Model
	Username    string `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:user" json:"role"`

	// Relations: preload เฉพาะตอนจำเป็น
	Restaurants []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Orders      []Order      `json:"-"`
	Reviews     []Review     `json:"-"`
}
