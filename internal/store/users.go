package store

import (
	"context"
	"fmt"

	"ecobite/models"
)

// UserByEmail looks up an account by its normalized email address.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, notFound(err, "user", email)
	}
	return &user, nil
}

// User loads an account by ID.
func (s *Store) User(ctx context.Context, id uint) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// CreateUser stores a new account.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.ready(); err != nil {
		return err
	}
	user.Email = models.NormalizeEmail(user.Email)
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
