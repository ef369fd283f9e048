package repo

import (
	"context"

	"github.com/Skotchmaster/academic_records/internal/models"
)

func (r *GormRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Joins("Role").
		Where("users.email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, classify(ctx, "find user by email", err)
	}
	return &user, nil
}

func (r *GormRepo) FindProfileByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).
		Joins("Role").
		Where("users.id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, classify(ctx, "find user by id", err)
	}
	return &user, nil
}

// CreateUser relies on the unique index on users.email; a concurrent insert
// with the same email fails here with ErrDuplicateEmail.
func (r *GormRepo) CreateUser(ctx context.Context, fullName, email, passwordHash string, roleID uint) (uint, error) {
	user := models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		RoleID:       roleID,
	}
	if err := r.DB.WithContext(ctx).Omit("Role").Create(&user).Error; err != nil {
		return 0, classify(ctx, "create user", err)
	}
	return user.ID, nil
}

func (r *GormRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, classify(ctx, "email exists", err)
	}
	return count > 0, nil
}
