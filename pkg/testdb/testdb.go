// Package testdb opens migrated in-memory SQLite databases for tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"foodhub/configs"
	"foodhub/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Open(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := configs.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func User(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := &entity.User{Username: username, Email: username + "@example.com", Password: string(hash), Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func Restaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: name, Description: name + " kitchen", OwnerID: ownerID, OpeningTime: "09:00", ClosingTime: "22:00"}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	return r
}

func Dish(t *testing.T, db *gorm.DB, restaurantID uint, name string, price int64) *entity.Dish {
	t.Helper()
	d := &entity.Dish{RestaurantID: restaurantID, Name: name, Price: price}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("create dish: %v", err)
	}
	return d
}
