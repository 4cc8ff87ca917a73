package repository

import (
	"context"

	"foodhub/entity"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

// ดึงเมนูเดียว พร้อมร้าน (ใช้เช็คเจ้าของ)
func (r *DishRepository) FindByID(ctx context.Context, id uint) (*entity.Dish, error) {
	var dish entity.Dish
	if err := r.DB.WithContext(ctx).Preload("Restaurant").First(&dish, id).Error; err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *DishRepository) Create(ctx context.Context, dish *entity.Dish) error {
	return r.DB.WithContext(ctx).Create(dish).Error
}

func (r *DishRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Dish{}).Where("id = ?", id).Updates(fields).Error
}

// ลบเมนู และเอาออกจากตะกร้าทุกใบ
func (r *DishRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("dish_id = ?", id).Delete(&entity.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Dish{}, id).Error
	})
}
