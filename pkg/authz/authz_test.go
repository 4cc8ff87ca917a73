package authz

import (
	"testing"

	"foodhub/entity"
)

func TestRules(t *testing.T) {
	anon := Identity{}
	user := Identity{UserID: 1, Role: entity.RoleUser}
	owner := Identity{UserID: 2, Role: entity.RoleStaff}
	rival := Identity{UserID: 3, Role: entity.RoleStaff}
	root := Identity{UserID: 4, Role: entity.RoleSuperuser}

	rest := &entity.Restaurant{OwnerID: owner.UserID}
	order := &entity.Order{UserID: user.UserID}

	cases := []struct {
		name string
		got  bool
		want bool
	}{
		{"anonymous manages catalog", CanManageCatalog(anon), false},
		{"user manages catalog", CanManageCatalog(user), false},
		{"staff manages catalog", CanManageCatalog(owner), true},
		{"superuser manages catalog", CanManageCatalog(root), true},
		{"owner edits", CanEditRestaurant(owner, rest), true},
		{"rival staff edits", CanEditRestaurant(rival, rest), false},
		{"superuser edits", CanEditRestaurant(root, rest), true},
		{"nil restaurant", CanEditRestaurant(root, nil), false},
		{"buyer views order", CanViewOrder(user, order), true},
		{"superuser views someone's order", CanViewOrder(root, order), false},
		{"anonymous views order", CanViewOrder(anon, order), false},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}
