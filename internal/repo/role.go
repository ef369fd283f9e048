package repo

import (
	"context"

	"github.com/Skotchmaster/academic_records/internal/models"
)

func (r *GormRepo) FindRoleByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	if err := r.DB.WithContext(ctx).Where("role_name = ?", name).First(&role).Error; err != nil {
		return nil, classify(ctx, "find role by name", err)
	}
	return &role, nil
}

// FindRoleNameForUserID reads the user's role as currently stored, which may
// differ from the role embedded in an older token.
func (r *GormRepo) FindRoleNameForUserID(ctx context.Context, id uint) (string, error) {
	var row struct {
		RoleName string
	}
	res := r.DB.WithContext(ctx).
		Table("users").
		Select("roles.role_name").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.id = ?", id).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return "", classify(ctx, "find role for user", res.Error)
	}
	if res.RowsAffected == 0 {
		return "", ErrNotFound
	}
	return row.RoleName, nil
}

func (r *GormRepo) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if err := r.DB.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, classify(ctx, "list roles", err)
	}
	return roles, nil
}
