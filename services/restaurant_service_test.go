package services

import (
	"context"
	"errors"
	"testing"

	"foodhub/entity"
	"foodhub/pkg/authz"
	"foodhub/pkg/testdb"
	"foodhub/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type catalogFixture struct {
	db     *gorm.DB
	rests  *RestaurantService
	dishes *DishService
	staff  *entity.User
	other  *entity.User
	admin  *entity.User
	user   *entity.User
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db := testdb.Open(t)
	log := quietLogger()
	restRepo := repository.NewRestaurantRepository(db)
	return &catalogFixture{
		db:     db,
		rests:  NewRestaurantService(db, restRepo, repository.NewCuisineRepository(db), nil, log),
		dishes: NewDishService(repository.NewDishRepository(db), restRepo, nil, log),
		staff:  testdb.User(t, db, "chef", entity.RoleStaff),
		other:  testdb.User(t, db, "rival", entity.RoleStaff),
		admin:  testdb.User(t, db, "root", entity.RoleSuperuser),
		user:   testdb.User(t, db, "diner", entity.RoleUser),
	}
}

func str(s string) *string { return &s }

func TestRestaurant_CreateWithNewCuisines(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	thai, err := f.rests.CreateCuisine(ctx, identity(f.staff), "Thai")
	if err != nil {
		t.Fatalf("create cuisine: %v", err)
	}

	in := RestaurantIn{
		Name: str("Baan Suan"), OpeningTime: str("10:00"), ClosingTime: str("21:30"),
		CuisineIDs: []uint{thai.ID}, NewCuisines: "Isaan, thai ,, Thai",
	}
	rest, err := f.rests.Create(ctx, identity(f.staff), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rest.OwnerID != f.staff.ID {
		t.Fatalf("owner = %d", rest.OwnerID)
	}

	got, err := f.rests.Get(ctx, rest.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	names := map[string]bool{}
	for _, c := range got.Cuisines {
		names[c.Name] = true
	}
	if !names["Thai"] || !names["Isaan"] {
		t.Fatalf("cuisines = %+v", got.Cuisines)
	}

	list, err := f.rests.Explore(ctx, repository.RestaurantFilter{CuisineID: thai.ID})
	if err != nil || len(list) != 1 {
		t.Fatalf("explore = %d %v", len(list), err)
	}
	list, _ = f.rests.Explore(ctx, repository.RestaurantFilter{Query: "suan"})
	if len(list) != 1 {
		t.Fatalf("explore by text = %d", len(list))
	}
}

func TestRestaurant_Permissions(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	in := RestaurantIn{Name: str("Dumpling House"), OpeningTime: str("11:00"), ClosingTime: str("23:00")}

	if _, err := f.rests.Create(ctx, identity(f.user), in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user create err = %v", err)
	}
	if _, err := f.rests.Create(ctx, authz.Identity{}, in); !errors.Is(err, ErrForbidden) {
		t.Fatalf("anonymous create err = %v", err)
	}
	rest, err := f.rests.Create(ctx, identity(f.staff), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	patch := RestaurantIn{Description: str("hand made")}
	if _, err := f.rests.Update(ctx, identity(f.other), rest.ID, patch); !errors.Is(err, ErrForbidden) {
		t.Fatalf("rival update err = %v", err)
	}
	got, err := f.rests.Update(ctx, identity(f.admin), rest.ID, patch)
	if err != nil || got.Description != "hand made" || got.Name != "Dumpling House" {
		t.Fatalf("admin update = %+v %v", got, err)
	}

	mine, _ := f.rests.Dashboard(ctx, identity(f.other))
	if len(mine) != 0 {
		t.Fatalf("rival dashboard = %d", len(mine))
	}
	all, _ := f.rests.Dashboard(ctx, identity(f.admin))
	if len(all) != 1 {
		t.Fatalf("admin dashboard = %d", len(all))
	}
	if _, err := f.rests.Dashboard(ctx, identity(f.user)); !errors.Is(err, ErrForbidden) {
		t.Fatalf("user dashboard err = %v", err)
	}
}

func TestRestaurant_Validation(t *testing.T) {
	f := newCatalogFixture(t)
	_, err := f.rests.Create(context.Background(), identity(f.staff), RestaurantIn{Name: str(" "), OpeningTime: str("25:00"), ClosingTime: str("9:00")})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, field := range []string{"name", "openingTime", "closingTime"} {
		if verr.Fields[field] == "" {
			t.Errorf("missing error for %s: %+v", field, verr.Fields)
		}
	}
	if n := count(t, f.db, &entity.Restaurant{}, ""); n != 0 {
		t.Fatalf("restaurants = %d, want 0", n)
	}
}

func TestRestaurant_DeleteRemovesDishesFromCarts(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	rest := testdb.Restaurant(t, f.db, f.staff.ID, "Soon Gone")
	dish := testdb.Dish(t, f.db, rest.ID, "Bao", 450)
	cart := entity.Cart{UserID: f.user.ID}
	f.db.Create(&cart)
	f.db.Create(&entity.CartItem{CartID: cart.ID, DishID: dish.ID, Quantity: 2})

	if err := f.rests.Delete(ctx, identity(f.other), rest.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("rival delete err = %v", err)
	}
	if err := f.rests.Delete(ctx, identity(f.staff), rest.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.rests.Get(ctx, rest.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
	if n := count(t, f.db, &entity.CartItem{}, ""); n != 0 {
		t.Fatalf("cart items = %d, want 0", n)
	}
}

func TestDish_CRUD(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	rest := testdb.Restaurant(t, f.db, f.staff.ID, "Taco Stand")
	price := decimal.RequireFromString("12.50")

	if _, err := f.dishes.Create(ctx, identity(f.other), rest.ID, DishIn{Name: str("Al Pastor"), Price: &price}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("rival create err = %v", err)
	}
	d, err := f.dishes.Create(ctx, identity(f.staff), rest.ID, DishIn{Name: str("Al Pastor"), Price: &price})
	if err != nil || d.Price != 1250 {
		t.Fatalf("create = %+v %v", d, err)
	}

	bad := decimal.RequireFromString("3.999")
	var verr *ValidationError
	if _, err := f.dishes.Update(ctx, identity(f.staff), d.ID, DishIn{Price: &bad}); !errors.As(err, &verr) {
		t.Fatalf("bad price err = %v", err)
	}

	cheaper := decimal.RequireFromString("9")
	got, err := f.dishes.Update(ctx, identity(f.admin), d.ID, DishIn{Price: &cheaper})
	if err != nil || got.Price != 900 || got.Name != "Al Pastor" {
		t.Fatalf("update = %+v %v", got, err)
	}

	if err := f.dishes.Delete(ctx, identity(f.staff), d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.dishes.Get(ctx, d.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
}

func TestToMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.50", 1250, true},
		{"0", 0, true},
		{"7", 700, true},
		{"0.01", 1, true},
		{"1.005", 0, false},
		{"-2", 0, false},
		{"99999999.99", 9999999999, true},
		{"100000000", 0, false},
		{"100000000000000000000", 0, false},
	}
	for _, tc := range cases {
		got, ok := ToMinorUnits(decimal.RequireFromString(tc.in))
		if got != tc.want || ok != tc.ok {
			t.Errorf("ToMinorUnits(%s) = %d,%v want %d,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
