package services

import (
	"context"
	"regexp"
	"strings"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/pkg/cache"
	"foodhub/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type RestaurantService struct {
	DB          *gorm.DB
	Repo        *repository.RestaurantRepository
	CuisineRepo *repository.CuisineRepository
	Cache       *cache.Cache
	log         *logrus.Entry
}

func NewRestaurantService(db *gorm.DB, repo *repository.RestaurantRepository, cr *repository.CuisineRepository, c *cache.Cache, log *logrus.Logger) *RestaurantService {
	return &RestaurantService{DB: db, Repo: repo, CuisineRepo: cr, Cache: c, log: log.WithField("service", "restaurant")}
}

// RestaurantIn ใช้ทั้ง create และ update (update: nil = ไม่แก้)
type RestaurantIn struct {
	Name           *string `json:"name"`
	Description    *string `json:"description"`
	OpeningTime    *string `json:"openingTime"`
	ClosingTime    *string `json:"closingTime"`
	IframeLocation *string `json:"iframeLocation"`
	Location       *string `json:"location"`
	Featured       *bool   `json:"featured"`
	CuisineIDs     []uint  `json:"cuisineIds"`
	// comma separated names, created when missing
	NewCuisines string `json:"newCuisines"`
}

func (in *RestaurantIn) validate(creating bool) error {
	v := &ValidationError{Fields: map[string]string{}}
	if creating && (in.Name == nil || strings.TrimSpace(*in.Name) == "") {
		v.Fields["name"] = "is required"
	}
	if in.Name != nil && len(strings.TrimSpace(*in.Name)) > 200 {
		v.Fields["name"] = "must be at most 200 characters"
	}
	if creating && (in.OpeningTime == nil || in.ClosingTime == nil) {
		v.Fields["openingTime"] = "opening and closing time are required"
	}
	for field, t := range map[string]*string{"openingTime": in.OpeningTime, "closingTime": in.ClosingTime} {
		if t != nil && !clockRe.MatchString(*t) {
			v.Fields[field] = "must be HH:MM"
		}
	}
	if len(v.Fields) > 0 {
		return v
	}
	return nil
}

func (in *RestaurantIn) fields() map[string]any {
	f := map[string]any{}
	if in.Name != nil {
		f["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		f["description"] = *in.Description
	}
	if in.OpeningTime != nil {
		f["opening_time"] = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		f["closing_time"] = *in.ClosingTime
	}
	if in.IframeLocation != nil {
		f["iframe_location"] = *in.IframeLocation
	}
	if in.Location != nil {
		f["location"] = *in.Location
	}
	if in.Featured != nil {
		f["featured"] = *in.Featured
	}
	return f
}

// resolveCuisines รวม cuisine เดิมตาม id กับชื่อใหม่ที่พิมพ์มา
func (s *RestaurantService) resolveCuisines(tx *gorm.DB, in *RestaurantIn) ([]entity.Cuisine, error) {
	out, err := s.CuisineRepo.FindByIDs(tx, in.CuisineIDs)
	if err != nil {
		return nil, err
	}
	seen := map[uint]bool{}
	for _, c := range out {
		seen[c.ID] = true
	}
	for _, name := range strings.Split(in.NewCuisines, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		c, err := s.CuisineRepo.FirstOrCreate(tx, name)
		if err != nil {
			return nil, err
		}
		if !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *RestaurantService) Explore(ctx context.Context, f repository.RestaurantFilter) ([]entity.Restaurant, error) {
	f.OwnerID = 0
	return s.Repo.List(ctx, f)
}

// Dashboard: staff เห็นร้านตัวเอง, superuser เห็นทั้งหมด
func (s *RestaurantService) Dashboard(ctx context.Context, id authz.Identity) ([]entity.Restaurant, error) {
	if !authz.CanManageCatalog(id) {
		return nil, ErrForbidden
	}
	f := repository.RestaurantFilter{}
	if !id.IsSuperuser() {
		f.OwnerID = id.UserID
	}
	return s.Repo.List(ctx, f)
}

func (s *RestaurantService) Get(ctx context.Context, restaurantID uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := cache.Fetch(ctx, s.Cache, cache.RestaurantKey(restaurantID), &rest, func() (entity.Restaurant, error) {
		r, err := s.Repo.FindByID(ctx, restaurantID)
		if err != nil {
			return entity.Restaurant{}, err
		}
		return *r, nil
	})
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	return &rest, nil
}

func (s *RestaurantService) Create(ctx context.Context, id authz.Identity, in RestaurantIn) (*entity.Restaurant, error) {
	if !authz.CanManageCatalog(id) {
		return nil, ErrForbidden
	}
	if err := in.validate(true); err != nil {
		return nil, err
	}

	rest := &entity.Restaurant{OwnerID: id.UserID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cuisines, err := s.resolveCuisines(tx, &in)
		if err != nil {
			return err
		}
		rest.Name = strings.TrimSpace(*in.Name)
		rest.OpeningTime = *in.OpeningTime
		rest.ClosingTime = *in.ClosingTime
		if in.Description != nil {
			rest.Description = *in.Description
		}
		if in.IframeLocation != nil {
			rest.IframeLocation = *in.IframeLocation
		}
		if in.Location != nil {
			rest.Location = *in.Location
		}
		if in.Featured != nil {
			rest.Featured = *in.Featured
		}
		rest.Cuisines = cuisines
		return s.Repo.Create(tx, rest)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"restaurant_id": rest.ID, "owner_id": id.UserID}).Info("restaurant created")
	return rest, nil
}

func (s *RestaurantService) Update(ctx context.Context, id authz.Identity, restaurantID uint, in RestaurantIn) (*entity.Restaurant, error) {
	rest, err := s.Repo.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, notFound(err, "restaurant")
	}
	if !authz.CanEditRestaurant(id, rest) {
		return nil, ErrForbidden
	}
	if err := in.validate(false); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cuisines []entity.Cuisine
		if in.CuisineIDs != nil || in.NewCuisines != "" {
			if cuisines, err = s.resolveCuisines(tx, &in); err != nil {
				return err
			}
		}
		return s.Repo.Update(tx, rest, in.fields(), cuisines)
	})
	if err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx, cache.RestaurantKey(restaurantID))
	return s.Repo.FindByID(ctx, restaurantID)
}

func (s *RestaurantService) Delete(ctx context.Context, id authz.Identity, restaurantID uint) error {
	rest, err := s.Repo.FindByID(ctx, restaurantID)
	if err != nil {
		return notFound(err, "restaurant")
	}
	if !authz.CanEditRestaurant(id, rest) {
		return ErrForbidden
	}
	if err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Repo.Delete(tx, restaurantID)
	}); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx, cache.RestaurantKey(restaurantID))
	s.log.WithFields(logrus.Fields{"restaurant_id": restaurantID, "by": id.UserID}).Info("restaurant deleted")
	return nil
}

// ----- Cuisines -----

func (s *RestaurantService) Cuisines(ctx context.Context) ([]entity.Cuisine, error) {
	return s.CuisineRepo.List(ctx)
}

func (s *RestaurantService) CreateCuisine(ctx context.Context, id authz.Identity, name string) (*entity.Cuisine, error) {
	if !authz.CanManageCatalog(id) {
		return nil, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 100 {
		return nil, invalid("name", "must be 1-100 characters")
	}
	return s.CuisineRepo.FirstOrCreate(s.DB.WithContext(ctx), name)
}
