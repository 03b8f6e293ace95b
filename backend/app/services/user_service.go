package services

import (
	"errors"

	"sysai-relay/backend/app/models"

	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(u *models.User) error
	FindByUsername(username string) (*models.User, error)
	CountByUsername(username string) (int64, error)
}

type UserService struct{ users UserStore }

func NewUserService(users UserStore) *UserService { return &UserService{users: users} }

func (s *UserService) EnsureAdmin(username, password string) error {
	count, err := s.users.CountByUsername(username)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return s.users.Create(&models.User{Username: username, PasswordHash: string(hash), Role: "admin"})
}

func (s *UserService) CreateUser(username, password, role string) error {
	if role == "" {
		role = "user"
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return s.users.Create(&models.User{Username: username, PasswordHash: string(hash), Role: role})
}

func (s *UserService) ValidateCredentials(username, password string) (*models.User, error) {
	u, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, errors.New("invalid credentials")
	}
	return u, nil
}
