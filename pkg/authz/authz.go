// Package authz holds the role rules of the platform as pure functions over
// an identity and the resource being touched.
package authz

import "foodhub/entity"

// Identity is the authenticated caller, passed explicitly into every
// cart, order and review operation.
type Identity struct {
	UserID uint
	Role   string
}

func (id Identity) Anonymous() bool { return id.UserID == 0 }

func (id Identity) IsSuperuser() bool { return id.Role == entity.RoleSuperuser }

// CanManageCatalog: staff and superusers may create restaurants and cuisines.
func CanManageCatalog(id Identity) bool {
	if id.Anonymous() {
		return false
	}
	return id.Role == entity.RoleStaff || id.IsSuperuser()
}

// CanEditRestaurant: the owner or a superuser. Dishes inherit the rule from their restaurant.
func CanEditRestaurant(id Identity, r *entity.Restaurant) bool {
	if id.Anonymous() || r == nil {
		return false
	}
	return id.IsSuperuser() || r.OwnerID == id.UserID
}

// CanViewOrder: only the user who placed it.
func CanViewOrder(id Identity, o *entity.Order) bool {
	return !id.Anonymous() && o != nil && o.UserID == id.UserID
}
