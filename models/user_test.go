package models_test

import (
	"context"
	"errors"
	"testing"

	"github.com/returnukhti/resi_backend/models"
	"github.com/returnukhti/resi_backend/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	user, err := models.Register(ctx, &models.NewUser{
		Name:     "Owner",
		Email:    "Owner@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "owner@example.com" {
		t.Fatalf("email not lowercased: %q", user.Email)
	}
	if user.Password != "" {
		t.Fatalf("password leaked in response")
	}

	info, err := models.Login(ctx, "owner@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info.Token == "" {
		t.Fatalf("no token issued")
	}
	if info.User.ID != user.ID {
		t.Fatalf("login user id = %d, want %d", info.User.ID, user.ID)
	}

	claims, err := utils.JwtValidate(info.Token)
	if err != nil || !claims.Valid {
		t.Fatalf("issued token does not validate: %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.Register(ctx, &models.NewUser{Email: "", Password: "x"}); !utils.IsValidationError(err) {
		t.Fatalf("blank email: got %v, want validation error", err)
	}
	if _, err := models.Register(ctx, &models.NewUser{Email: "not-an-email", Password: "x"}); !utils.IsValidationError(err) {
		t.Fatalf("bad email: got %v, want validation error", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.Register(ctx, &models.NewUser{Email: "owner@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := models.Register(ctx, &models.NewUser{Email: "OWNER@example.com", Password: "other456"})
	if !errors.Is(err, utils.ErrorDuplicateRecord) {
		t.Fatalf("duplicate register: got %v, want duplicate error", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	openTestDB(t)
	ctx := context.Background()

	if _, err := models.Register(ctx, &models.NewUser{Email: "owner@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPw := models.Login(ctx, "owner@example.com", "nope")
	_, noUser := models.Login(ctx, "ghost@example.com", "nope")
	if wrongPw == nil || noUser == nil {
		t.Fatalf("bad logins succeeded")
	}
	// Both failures read identically; account existence is not leaked.
	if wrongPw.Error() != noUser.Error() {
		t.Fatalf("login errors differ: %q vs %q", wrongPw.Error(), noUser.Error())
	}
}
