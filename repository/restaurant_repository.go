package repository

import (
	"context"
	"strings"

	"foodhub/entity"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

// RestaurantFilter ใช้กับหน้า explore และ dashboard
type RestaurantFilter struct {
	Query     string
	CuisineID uint
	Featured  *bool
	OwnerID   uint
}

// ดึงร้านตาม filter (ใหม่สุดก่อน)
func (r *RestaurantRepository) List(ctx context.Context, f RestaurantFilter) ([]entity.Restaurant, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Restaurant{})
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", like, like, like)
	}
	if f.CuisineID != 0 {
		q = q.Where("id IN (?)", r.DB.Table("restaurant_cuisines").
			Select("restaurant_id").Where("cuisine_id = ?", f.CuisineID))
	}
	if f.Featured != nil {
		q = q.Where("featured = ?", *f.Featured)
	}
	if f.OwnerID != 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	var rests []entity.Restaurant
	err := q.Preload("Cuisines").Order("created_at DESC").Order("id DESC").Find(&rests).Error
	return rests, err
}

// ดึงร้านตาม ID พร้อมเมนู
func (r *RestaurantRepository) FindByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("Cuisines").
		Preload("Dishes", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&rest, id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Create(tx *gorm.DB, rest *entity.Restaurant) error {
	return tx.Create(rest).Error
}

// อัปเดตฟิลด์ + แทนที่ cuisines ทั้งชุด
func (r *RestaurantRepository) Update(tx *gorm.DB, rest *entity.Restaurant, fields map[string]any, cuisines []entity.Cuisine) error {
	if len(fields) > 0 {
		if err := tx.Model(rest).Updates(fields).Error; err != nil {
			return err
		}
	}
	if cuisines != nil {
		return tx.Model(rest).Association("Cuisines").Replace(cuisines)
	}
	return nil
}

// ลบร้านพร้อมเมนูของร้าน
func (r *RestaurantRepository) Delete(tx *gorm.DB, id uint) error {
	dishIDs := tx.Model(&entity.Dish{}).Select("id").Where("restaurant_id = ?", id)
	if err := tx.Unscoped().Where("dish_id IN (?)", dishIDs).Delete(&entity.CartItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("restaurant_id = ?", id).Delete(&entity.Dish{}).Error; err != nil {
		return err
	}
	return tx.Delete(&entity.Restaurant{}, id).Error
}

// เช็คร้านว่ามีอยู่จริงมั้ย
func (r *RestaurantRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var cnt int64
	if err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
