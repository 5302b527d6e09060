package services

import (
	"errors"
	"fmt"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles account management beyond authentication: admin CRUD
// and profile updates.
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateUserInput carries the optional fields of a user update. Empty
// strings mean "leave unchanged" except Name and Email, which are required.
type UpdateUserInput struct {
	Name         string
	Email        string
	Password     string
	Role         string
	ProfileImage string
}

// List returns all users, newest first.
func (s *UserService) List() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// Get returns one user by id.
func (s *UserService) Get(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// Create adds a user with an explicit role, for the admin panel.
func (s *UserService) Create(name, email, password, role string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies an admin edit to a user: name and email always, password,
// role, and profile image when supplied. Changing the email to one owned by
// another account is rejected.
func (s *UserService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Email != user.Email {
		taken, err := s.userRepo.EmailTakenByOther(input.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrEmailExists
		}
	}

	fields := map[string]interface{}{
		"name":  input.Name,
		"email": input.Email,
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password"] = string(hashed)
	}
	if input.Role != "" {
		fields["role"] = input.Role
	}
	if input.ProfileImage != "" {
		fields["profile_image"] = input.ProfileImage
	}

	if err := s.userRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(id)
}

// UpdateProfile is the self-service variant of Update: the role can never
// change through it.
func (s *UserService) UpdateProfile(id uint, input UpdateUserInput) (*models.User, error) {
	input.Role = ""
	return s.Update(id, input)
}

// Delete removes a user. Deleting the last remaining admin account is
// rejected so the system cannot lock itself out.
func (s *UserService) Delete(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		admins, err := s.userRepo.CountByRole(models.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	return s.userRepo.Delete(id)
}
