package rbac

import (
	"context"

	"github.com/danisworo/inventory-backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Repository loads back office users for permission checks.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindUserByID loads one user.
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
