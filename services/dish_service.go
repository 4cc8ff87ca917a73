package services

import (
	"context"
	"strings"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/pkg/cache"
	"foodhub/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type DishService struct {
	Repo     *repository.DishRepository
	RestRepo *repository.RestaurantRepository
	Cache    *cache.Cache
	log      *logrus.Entry
}

func NewDishService(repo *repository.DishRepository, restRepo *repository.RestaurantRepository, c *cache.Cache, log *logrus.Logger) *DishService {
	return &DishService{Repo: repo, RestRepo: restRepo, Cache: c, log: log.WithField("service", "dish")}
}

// DishIn: price รับเป็น "12.50" หรือ 12.5 ก็ได้
type DishIn struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Featured    *bool            `json:"featured"`
}

// MaxDishPrice in cents (10 digits, 2 decimals)
const MaxDishPrice int64 = 9_999_999_999

// ToMinorUnits converts a decimal amount to cents. More than two fractional digits is rejected.
func ToMinorUnits(d decimal.Decimal) (int64, bool) {
	cents := d.Shift(2)
	if !cents.Equal(cents.Truncate(0)) || cents.IsNegative() {
		return 0, false
	}
	if cents.GreaterThan(decimal.NewFromInt(MaxDishPrice)) {
		return 0, false
	}
	return cents.IntPart(), true
}

func (in *DishIn) validate(creating bool) (map[string]any, error) {
	v := &ValidationError{Fields: map[string]string{}}
	f := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > 200 {
			v.Fields["name"] = "must be 1-200 characters"
		}
		f["name"] = name
	} else if creating {
		v.Fields["name"] = "is required"
	}
	if in.Price != nil {
		cents, ok := ToMinorUnits(*in.Price)
		if !ok {
			v.Fields["price"] = "must be between 0 and 99999999.99 with at most 2 decimals"
		}
		f["price"] = cents
	} else if creating {
		v.Fields["price"] = "is required"
	}
	if in.Description != nil {
		f["description"] = *in.Description
	}
	if in.Featured != nil {
		f["featured"] = *in.Featured
	}
	if len(v.Fields) > 0 {
		return nil, v
	}
	return f, nil
}

func (s *DishService) Get(ctx context.Context, dishID uint) (*entity.Dish, error) {
	d, err := s.Repo.FindByID(ctx, dishID)
	if err != nil {
		return nil, notFound(err, "dish")
	}
	return d, nil
}

func (s *DishService) Create(ctx context.Context, id authz.Identity, restaurantID uint, in DishIn) (*entity.Dish, error) {
	rest, err := s.RestRepo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	if !authz.CanEditRestaurant(id, rest) {
		return nil, ErrForbidden
	}
	f, err := in.validate(true)
	if err != nil {
		return nil, err
	}
	dish := &entity.Dish{
		Name:         f["name"].(string),
		Price:        f["price"].(int64),
		RestaurantID: rest.ID,
	}
	if in.Description != nil {
		dish.Description = *in.Description
	}
	if in.Featured != nil {
		dish.Featured = *in.Featured
	}
	if err := s.Repo.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, cache.RestaurantKey(rest.ID))
	s.log.WithFields(logrus.Fields{"dish_id": dish.ID, "restaurant_id": rest.ID}).Info("dish created")
	return dish, nil
}

// owned หา dish แล้วเช็คว่าเป็นเจ้าของร้านหรือ superuser
func (s *DishService) owned(ctx context.Context, id authz.Identity, dishID uint) (*entity.Dish, error) {
	d, err := s.Repo.FindByID(ctx, dishID)
	if err != nil {
		return nil, notFound(err, "dish")
	}
	if !authz.CanEditRestaurant(id, &d.Restaurant) {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *DishService) Update(ctx context.Context, id authz.Identity, dishID uint, in DishIn) (*entity.Dish, error) {
	d, err := s.owned(ctx, id, dishID)
	if err != nil {
		return nil, err
	}
	f, err := in.validate(false)
	if err != nil {
		return nil, err
	}
	if len(f) > 0 {
		if err := s.Repo.Update(ctx, d.ID, f); err != nil {
			return nil, err
		}
	}
	s.Cache.Invalidate(ctx, cache.RestaurantKey(d.RestaurantID))
	return s.Get(ctx, d.ID)
}

func (s *DishService) Delete(ctx context.Context, id authz.Identity, dishID uint) error {
	d, err := s.owned(ctx, id, dishID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, d.ID); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cache.RestaurantKey(d.RestaurantID))
	return nil
}
