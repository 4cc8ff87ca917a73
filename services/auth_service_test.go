package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodhub/entity"
	"foodhub/pkg/testdb"
	"foodhub/repository"
	"foodhub/utils"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAuthService(repository.NewUserRepository(db), "k", time.Hour)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterIn{Username: "nok", Email: "Nok@Example.com", Password: "password1", PhoneNumber: "0812345678", Role: entity.RoleStaff})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Email != "nok@example.com" || u.Role != entity.RoleStaff || u.Password == "password1" {
		t.Fatalf("user = %+v", u)
	}

	if _, err := svc.Register(ctx, RegisterIn{Username: "other", Email: "nok@example.com", Password: "password1"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate email err = %v", err)
	}

	for _, login := range []string{"nok", "nok@example.com"} {
		tok, got, err := svc.Login(ctx, login, "password1")
		if err != nil || got.ID != u.ID {
			t.Fatalf("login %s: %v", login, err)
		}
		claims, err := utils.ParseToken(tok, "k")
		if err != nil || claims.UserID != u.ID || claims.Role != entity.RoleStaff {
			t.Fatalf("claims = %+v %v", claims, err)
		}
	}

	if _, _, err := svc.Login(ctx, "nok", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := svc.Login(ctx, "ghost", "password1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v", err)
	}
}

func TestAuth_CannotSelfRegisterSuperuser(t *testing.T) {
	db := testdb.Open(t)
	svc := NewAuthService(repository.NewUserRepository(db), "k", time.Hour)
	u, err := svc.Register(context.Background(), RegisterIn{Username: "sneaky", Email: "s@example.com", Password: "password1", Role: entity.RoleSuperuser})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != entity.RoleUser {
		t.Fatalf("role = %s, want user", u.Role)
	}
}
