package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewService struct {
	DB       *gorm.DB
	Repo     *repository.ReviewRepository
	RestRepo *repository.RestaurantRepository
	log      *logrus.Entry
	now      func() time.Time
}

func NewReviewService(db *gorm.DB, repo *repository.ReviewRepository, restRepo *repository.RestaurantRepository, log *logrus.Logger) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, RestRepo: restRepo, log: log.WithField("service", "review"), now: time.Now}
}

type ReviewIn struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ParseRating รับ rating ดิบจาก body; ไม่ใช่จำนวนเต็มได้ ValidationError
func ParseRating(raw json.RawMessage) (int, error) {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil || n == "" {
		return 0, invalid("rating", "must be an integer between 1 and 5")
	}
	v, err := n.Int64()
	if err != nil || v < MinRating || v > MaxRating {
		return 0, invalid("rating", "must be an integer between 1 and 5")
	}
	return int(v), nil
}

// Upsert สร้างรีวิวใหม่ หรืออัปเดตของเดิมของ (user, restaurant)
// created reports whether a new row was inserted.
func (s *ReviewService) Upsert(ctx context.Context, id authz.Identity, restaurantID uint, in ReviewIn) (rev *entity.Review, created bool, err error) {
	if id.Anonymous() {
		return nil, false, ErrUnauthorized
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, false, invalid("rating", "must be an integer between 1 and 5")
	}
	ok, err := s.RestRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, ErrNotFound
	}

	comment := strings.TrimSpace(in.Comment)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exist, err := s.Repo.FindByUserRestaurant(tx, id.UserID, restaurantID)
		if err == nil {
			exist.Rating = in.Rating
			exist.Comment = comment
			exist.ReviewDate = s.now()
			rev = exist
			return s.Repo.Save(tx, exist)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rev = &entity.Review{
			Rating:       in.Rating,
			Comment:      comment,
			ReviewDate:   s.now(),
			UserID:       id.UserID,
			RestaurantID: restaurantID,
		}
		created = true
		return s.Repo.Create(tx, rev)
	})
	if err != nil {
		return nil, false, err
	}
	s.log.WithFields(logrus.Fields{"user_id": id.UserID, "restaurant_id": restaurantID, "created": created}).Info("review saved")
	return rev, created, nil
}

type ReviewPage struct {
	Items     []entity.Review            `json:"items"`
	Limit     int                        `json:"limit"`
	Offset    int                        `json:"offset"`
	Aggregate repository.ReviewAggregate `json:"aggregate"`
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *ReviewService) ListForRestaurant(ctx context.Context, restaurantID uint, limit, offset int) (*ReviewPage, error) {
	ok, err := s.RestRepo.Exists(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	limit, offset = clampPage(limit, offset)
	items, agg, err := s.Repo.ListForRestaurant(ctx, restaurantID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Items: items, Limit: limit, Offset: offset, Aggregate: agg}, nil
}

func (s *ReviewService) ListForUser(ctx context.Context, id authz.Identity, limit, offset int) (*ReviewPage, error) {
	if id.Anonymous() {
		return nil, ErrUnauthorized
	}
	limit, offset = clampPage(limit, offset)
	items, err := s.Repo.ListForUser(ctx, id.UserID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Items: items, Limit: limit, Offset: offset}, nil
}
