package repository

import (
	"context"
	"time"

	"foodhub/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(ctx context.Context, o *entity.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

// ลบ order ทิ้งจริง ใช้ตอนสร้าง payment session ไม่สำเร็จ
func (r *OrderRepository) HardDelete(ctx context.Context, orderID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.Order{}, orderID).Error
	})
}

func (r *OrderRepository) SetSessionID(ctx context.Context, orderID uint, sessionID string) error {
	return r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ?", orderID).
		Update("payment_session_id", sessionID).Error
}

func (r *OrderRepository) FindBySessionID(tx *gorm.DB, sessionID string) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Where("payment_session_id = ?", sessionID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindBySessionForUser(ctx context.Context, sessionID string, userID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).
		Where("payment_session_id = ? AND user_id = ?", sessionID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// อัปเดตสถานะแบบมี guard: ได้ 0 แถวแปลว่าสถานะไม่ใช่ from แล้ว
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, extra map[string]any) (int64, error) {
	updates := map[string]any{"status": to}
	for k, v := range extra {
		updates[k] = v
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// ---------------- Order Items ----------------

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// ร้านทั้งหมดที่อยู่ใน order นี้
func (r *OrderRepository) RestaurantIDs(ctx context.Context, orderID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&entity.OrderItem{}).
		Where("order_id = ?", orderID).
		Distinct().Order("restaurant_id ASC").
		Pluck("restaurant_id", &ids).Error
	return ids, err
}

// ---------------- History ----------------

type OrderSummary struct {
	ID         uint               `json:"id"`
	Status     entity.OrderStatus `json:"status"`
	TotalPrice int64              `json:"totalPrice"`
	Currency   string             `json:"currency"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForUser(ctx context.Context, userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("id, status, total_price, currency, created_at").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) GetOrderForUser(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}
