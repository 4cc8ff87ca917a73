package repository

import (
	"context"
	"errors"

	"foodhub/entity"

	"gorm.io/gorm"
)

type CuisineRepository struct{ DB *gorm.DB }

func NewCuisineRepository(db *gorm.DB) *CuisineRepository { return &CuisineRepository{DB: db} }

func (r *CuisineRepository) List(ctx context.Context) ([]entity.Cuisine, error) {
	var out []entity.Cuisine
	err := r.DB.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

func (r *CuisineRepository) FindByIDs(tx *gorm.DB, ids []uint) ([]entity.Cuisine, error) {
	out := []entity.Cuisine{}
	if len(ids) == 0 {
		return out, nil
	}
	err := tx.Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// คืน cuisine ตามชื่อ (ไม่สนตัวพิมพ์เล็ก/ใหญ่) ถ้าไม่มีก็สร้างใหม่
func (r *CuisineRepository) FirstOrCreate(tx *gorm.DB, name string) (*entity.Cuisine, error) {
	var c entity.Cuisine
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = entity.Cuisine{Name: name}
	if err := tx.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
