package repository

import (
	"context"

	"foodhub/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct{ DB *gorm.DB }

func NewReviewRepository(db *gorm.DB) *ReviewRepository { return &ReviewRepository{DB: db} }

func (r *ReviewRepository) FindByUserRestaurant(tx *gorm.DB, userID, restaurantID uint) (*entity.Review, error) {
	var rev entity.Review
	if err := tx.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).First(&rev).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.Review) error {
	return tx.Create(rev).Error
}

func (r *ReviewRepository) Save(tx *gorm.DB, rev *entity.Review) error {
	return tx.Save(rev).Error
}

type ReviewAggregate struct {
	AvgRating float64 `json:"avgRating"`
	Total     int64   `json:"total"`
}

func (r *ReviewRepository) ListForRestaurant(ctx context.Context, restaurantID uint, limit, offset int) ([]entity.Review, ReviewAggregate, error) {
	var agg ReviewAggregate
	var reviews []entity.Review
	db := r.DB.WithContext(ctx)
	if err := db.Where("restaurant_id = ?", restaurantID).
		Order("review_date DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, agg, err
	}

	// สรุปเร็ว ๆ
	var row struct {
		Avg   *float64
		Count int64
	}
	if err := db.Model(&entity.Review{}).
		Where("restaurant_id = ?", restaurantID).
		Select("AVG(rating) AS avg, COUNT(*) AS count").
		Scan(&row).Error; err != nil {
		return nil, agg, err
	}
	if row.Avg != nil {
		agg.AvgRating = *row.Avg
	}
	agg.Total = row.Count
	return reviews, agg, nil
}

func (r *ReviewRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("review_date DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	return reviews, err
}

// ร้านที่ user รีวิวไปแล้ว จากรายการที่ส่งมา
func (r *ReviewRepository) ReviewedRestaurantIDs(ctx context.Context, userID uint, restaurantIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(restaurantIDs))
	if len(restaurantIDs) == 0 {
		return out, nil
	}
	var ids []uint
	if err := r.DB.WithContext(ctx).Model(&entity.Review{}).
		Where("user_id = ? AND restaurant_id IN ?", userID, restaurantIDs).
		Pluck("restaurant_id", &ids).Error; err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
