package services

import (
	"testing"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")

	user, err := service.Register("Alice", "alice@example.com", "password123")

	assert.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")

	_, err := service.Register("Alice", "alice@example.com", "password123")
	assert.NoError(t, err)

	_, err = service.Register("Other Alice", "alice@example.com", "different")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")
	service.Register("Alice", "alice@example.com", "password123")

	user, token, err := service.Login("alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, models.RoleUser, claims["role"])
}

func TestLoginBadCredentials(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")
	service.Register("Alice", "alice@example.com", "password123")

	_, _, err := service.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")
	user, _ := service.Register("Alice", "alice@example.com", "password123")

	err := service.ChangePassword(user.ID, "password123", "newpassword")
	assert.NoError(t, err)

	_, _, err = service.Login("alice@example.com", "newpassword")
	assert.NoError(t, err)
	_, _, err = service.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")
	user, _ := service.Register("Alice", "alice@example.com", "password123")

	err := service.ChangePassword(user.ID, "not-the-password", "newpassword")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	service := NewAuthService(repo, "test_secret")
	other := NewAuthService(repo, "other_secret")
	service.Register("Alice", "alice@example.com", "password123")

	_, token, err := service.Login("alice@example.com", "password123")
	assert.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
