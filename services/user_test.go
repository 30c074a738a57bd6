package services

import (
	"errors"
	"testing"

	"github.com/fidelity-club/fidelity-be/models"
	"gorm.io/gorm"
)

func setupUsers(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()
	db := newTestDB(t)
	auth := NewAuthService(db)
	return db, NewUserService(db, &storageFake{}, auth)
}

func TestCreateUserIssuesQRAndLevel(t *testing.T) {
	_, svc := setupUsers(t)

	user, err := svc.CreateUser("Luis Mora", "22222222B", "luis@test.com", "600111222", "Calle Sol 4", "secreto1", models.RoleClient, 2500)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Level != models.LevelGold {
		t.Errorf("level = %s, want Gold for 2500 points", user.Level)
	}
	if user.QRCodeImage == "" {
		t.Error("expected an identification QR at creation")
	}
}

func TestUpdateUserPartialPatch(t *testing.T) {
	db, svc := setupUsers(t)
	user := seedUser(t, db, 100, models.RoleClient)

	phone := "600333444"
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Phone: &phone}, false)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Phone != phone {
		t.Errorf("phone = %q, want %q", updated.Phone, phone)
	}
	if updated.FullName != user.FullName || updated.Points != 100 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdateUserAdminFieldsAreGated(t *testing.T) {
	db, svc := setupUsers(t)
	user := seedUser(t, db, 100, models.RoleClient)

	points := 3000
	role := models.RoleReceptionist

	// Non-admin calls silently skip role and points.
	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{Points: &points, Role: &role}, false)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Points != 100 || updated.Role != models.RoleClient {
		t.Errorf("gated fields applied without admin: %d/%s", updated.Points, updated.Role)
	}

	// Admin calls apply them and the level follows the balance.
	updated, err = svc.UpdateUser(user.ID, UpdateUserInput{Points: &points, Role: &role}, true)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.Points != 3000 || updated.Role != models.RoleReceptionist {
		t.Errorf("admin patch not applied: %d/%s", updated.Points, updated.Role)
	}
	if updated.Level != models.LevelGold {
		t.Errorf("level = %s, want Gold recomputed from 3000", updated.Level)
	}
}

func TestUpdateUserRejectsNegativePoints(t *testing.T) {
	db, svc := setupUsers(t)
	user := seedUser(t, db, 100, models.RoleClient)

	negative := -1
	if _, err := svc.UpdateUser(user.ID, UpdateUserInput{Points: &negative}, true); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestUpdateUserBackfillsQR(t *testing.T) {
	db, svc := setupUsers(t)
	user := seedUser(t, db, 0, models.RoleClient)
	if user.QRCodeImage != "" {
		t.Fatal("seed should start without a QR")
	}

	updated, err := svc.UpdateUser(user.ID, UpdateUserInput{}, false)
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.QRCodeImage == "" {
		t.Error("expected QR to be issued when missing")
	}
}

func TestListUsers(t *testing.T) {
	db, svc := setupUsers(t)
	seedUser(t, db, 0, models.RoleClient)
	seedUser(t, db, 100, models.RoleAdmin)

	users, err := svc.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
}
