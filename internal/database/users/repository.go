// Package users provides database operations for the credential store.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByUsername(ctx, "jane")
package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

const what = "user"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a user. A taken username or email yields entities.ErrConflict.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	return database.MapError(r.db.WithContext(ctx).Create(user).Error, what)
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, database.MapError(err, what)
	}
	return &user, nil
}

// GetByUsername retrieves a user by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, database.MapError(err, what)
	}
	return &user, nil
}

func (r *Repository) List(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

// UpdateProfile overwrites the editable profile fields of an existing user.
func (r *Repository) UpdateProfile(ctx context.Context, user *entities.User) error {
	result := r.db.WithContext(ctx).Model(user).Select("full_name", "username", "email").Updates(user)
	if result.Error != nil {
		return database.MapError(result.Error, what)
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}

// Delete removes a user. Owned careers, courses, ratings and enrollments go with it.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return database.MapError(gorm.ErrRecordNotFound, what)
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&count).Error
	return count, err
}
