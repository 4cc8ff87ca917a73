package repository

import (
	"context"
	"errors"

	"foodhub/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// คืน Cart เดิมของ user (ถ้าไม่มีก็คืน Cart ว่าง ๆ โดยไม่ error เพื่อให้ FE แสดงได้)
func (r *CartRepository) GetCartWithItems(ctx context.Context, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Dish").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// สร้างหรืออ่าน Cart ของ user
func (r *CartRepository) GetOrCreateCart(ctx context.Context, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.WithContext(ctx).Where(entity.Cart{UserID: userID}).FirstOrCreate(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// เพิ่มเมนูลงตะกร้า: มีอยู่แล้ว +1, ไม่มีสร้างใหม่ที่ 1
func (r *CartRepository) AddDish(ctx context.Context, cartID, dishID uint) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("cart_id = ? AND dish_id = ?", cartID, dishID).First(&item).Error
		if err == nil {
			item.Quantity++
			return tx.Model(&item).Update("quantity", item.Quantity).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		item = entity.CartItem{CartID: cartID, DishID: dishID, Quantity: 1}
		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ensure item เป็นของ cart ของ user
func (r *CartRepository) FindItemForUser(ctx context.Context, userID, itemID uint) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, itemID uint, qty int) error {
	return r.DB.WithContext(ctx).Model(&entity.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", qty).Error
}

// ลบจริง (ไม่ soft delete) เพื่อไม่ให้ชน unique (cart_id, dish_id) ตอนเพิ่มใหม่
func (r *CartRepository) RemoveItem(ctx context.Context, itemID uint) error {
	return r.DB.WithContext(ctx).Unscoped().Delete(&entity.CartItem{}, itemID).Error
}

// ล้างตะกร้าของ user ภายใน transaction ที่ส่งมา
func (r *CartRepository) ClearCart(tx *gorm.DB, userID uint) (int64, error) {
	res := tx.Unscoped().
		Where("cart_id IN (SELECT id FROM carts WHERE user_id = ?)", userID).
		Delete(&entity.CartItem{})
	return res.RowsAffected, res.Error
}
