package services

import (
	"fmt"
	"testing"

	"sysai-relay/backend/app/models"
)

type fakeUserStore struct {
	users  map[string]*models.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore { return &fakeUserStore{users: map[string]*models.User{}} }

func (f *fakeUserStore) Create(u *models.User) error {
	if _, ok := f.users[u.Username]; ok {
		return fmt.Errorf("duplicate username %s", u.Username)
	}
	f.nextID++
	u.ID = f.nextID
	cp := *u
	f.users[u.Username] = &cp
	return nil
}

func (f *fakeUserStore) FindByUsername(username string) (*models.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s not found", username)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) CountByUsername(username string) (int64, error) {
	if _, ok := f.users[username]; ok {
		return 1, nil
	}
	return 0, nil
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)

	if err := svc.EnsureAdmin("admin", "admin123"); err != nil {
		t.Fatalf("first EnsureAdmin: %v", err)
	}
	if err := svc.EnsureAdmin("admin", "different-password"); err != nil {
		t.Fatalf("second EnsureAdmin: %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("got %d users, want 1", len(store.users))
	}
	if store.users["admin"].Role != "admin" {
		t.Errorf("role = %s, want admin", store.users["admin"].Role)
	}

	// original password still valid: the second call must not re-hash
	if _, err := svc.ValidateCredentials("admin", "admin123"); err != nil {
		t.Errorf("original password rejected: %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	if err := svc.CreateUser("bob", "s3cret", ""); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	u, err := svc.ValidateCredentials("bob", "s3cret")
	if err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	if u.Role != "user" {
		t.Errorf("default role = %s, want user", u.Role)
	}

	if _, err := svc.ValidateCredentials("bob", "wrong"); err == nil {
		t.Error("wrong password accepted")
	}
	if _, err := svc.ValidateCredentials("nobody", "s3cret"); err == nil {
		t.Error("unknown user accepted")
	}
}
