package repositories

import "foodcourt/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetAll() ([]models.User, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	CountByRole(role string) (int64, error)
	EmailTakenByOther(email string, id uint) (bool, error)
}
