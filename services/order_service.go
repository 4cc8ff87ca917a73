package services

import (
	"context"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/repository"
)

// OrderService is the read side of orders: history and receipts.
type OrderService struct {
	Repo *repository.OrderRepository
}

func NewOrderService(repo *repository.OrderRepository) *OrderService {
	return &OrderService{Repo: repo}
}

func (s *OrderService) ListMine(ctx context.Context, id authz.Identity, limit int) ([]repository.OrderSummary, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	out, err := s.Repo.ListOrdersForUser(ctx, id.UserID, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []repository.OrderSummary{}
	}
	return out, nil
}

// GetMine: order ของคนอื่นตอบ not found เหมือนไม่มีอยู่
func (s *OrderService) GetMine(ctx context.Context, id authz.Identity, orderID uint) (*entity.Order, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	o, err := s.Repo.GetOrderForUser(ctx, id.UserID, orderID)
	if err != nil {
		return nil, notFound(err, "order")
	}
	if !authz.CanViewOrder(id, o) {
		return nil, ErrNotFound
	}
	return o, nil
}
