package services

import (
	"context"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/repository"

	"github.com/sirupsen/logrus"
)

type CartService struct {
	CartRepo *repository.CartRepository
	DishRepo *repository.DishRepository
	log      *logrus.Entry
}

func NewCartService(cr *repository.CartRepository, dr *repository.DishRepository, log *logrus.Logger) *CartService {
	return &CartService{CartRepo: cr, DishRepo: dr, log: log.WithField("service", "cart")}
}

type CartLineOut struct {
	ItemID    uint   `json:"itemId"`
	DishID    uint   `json:"dishId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type CartView struct {
	Items []CartLineOut `json:"items"`
	Total int64         `json:"total"`
}

// View คืนตะกร้าพร้อม subtotal/total คิดจากราคาปัจจุบัน
func (s *CartService) View(ctx context.Context, id authz.Identity) (*CartView, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	c, err := s.CartRepo.GetCartWithItems(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	out := &CartView{Items: make([]CartLineOut, 0, len(c.Items)), Total: c.Total()}
	for _, it := range c.Items {
		out.Items = append(out.Items, CartLineOut{
			ItemID: it.ID, DishID: it.DishID, Name: it.Dish.Name,
			UnitPrice: it.Dish.Price, Quantity: it.Quantity, Subtotal: it.Subtotal(),
		})
	}
	return out, nil
}

// AddDish เพิ่มเมนูที่ quantity 1 หรือ +1 ถ้ามีอยู่แล้ว
func (s *CartService) AddDish(ctx context.Context, id authz.Identity, dishID uint) (*entity.CartItem, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	dish, err := s.DishRepo.FindByID(ctx, dishID)
	if err != nil {
		return nil, notFound(err, "dish")
	}
	c, err := s.CartRepo.GetOrCreateCart(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	item, err := s.CartRepo.AddDish(ctx, c.ID, dish.ID)
	if err != nil {
		return nil, err
	}
	item.Dish = *dish
	s.log.WithFields(logrus.Fields{"user_id": id.UserID, "dish_id": dish.ID, "quantity": item.Quantity}).Debug("dish added to cart")
	return item, nil
}

func (s *CartService) Increment(ctx context.Context, id authz.Identity, itemID uint) (*entity.CartItem, error) {
	item, err := s.ownedItem(ctx, id, itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity++
	if err := s.CartRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// Decrement ลดทีละ 1; ถ้าเหลือ 0 ลบรายการทิ้งแล้วคืน nil
func (s *CartService) Decrement(ctx context.Context, id authz.Identity, itemID uint) (*entity.CartItem, error) {
	item, err := s.ownedItem(ctx, id, itemID)
	if err != nil {
		return nil, err
	}
	if item.Quantity <= 1 {
		if err := s.CartRepo.RemoveItem(ctx, item.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	item.Quantity--
	if err := s.CartRepo.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
		return nil, err
	}
	return item, nil
}

// items of other users' carts are reported as not found
func (s *CartService) ownedItem(ctx context.Context, id authz.Identity, itemID uint) (*entity.CartItem, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	item, err := s.CartRepo.FindItemForUser(ctx, id.UserID, itemID)
	if err != nil {
		return nil, notFound(err, "cart item")
	}
	return item, nil
}
