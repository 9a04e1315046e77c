package db

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/timeblockhq/timeblock/internal/apperr"
	"github.com/timeblockhq/timeblock/internal/models"
)

// CreateUser creates a local account. The password is optional: CLI-only
// users never log in over HTTP and don't need one.
func CreateUser(name, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("user name must not be empty")
	}

	var existing models.User
	if err := DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, apperr.Validationf("user %q already exists", name)
	}

	user := models.User{Name: name}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByName looks a user up by name.
func GetUserByName(name string) (*models.User, error) {
	var user models.User
	if err := DB.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", name, apperr.ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// FindOrCreateUser returns the named user, creating it on first use.
// The CLI resolves the acting owner through this.
func FindOrCreateUser(name string) (*models.User, error) {
	user, err := GetUserByName(name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	return CreateUser(name, "")
}

// AuthenticateUser verifies name + password for the HTTP API. A missing
// user and a wrong password both come back as ErrNotFound.
func AuthenticateUser(name, password string) (*models.User, error) {
	user, err := GetUserByName(name)
	if err != nil {
		return nil, err
	}
	if user.PasswordHash == "" {
		return nil, fmt.Errorf("user %q has no password: %w", name, apperr.ErrNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", apperr.ErrNotFound)
	}
	return user, nil
}
