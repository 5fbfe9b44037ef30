package repo

import (
	"context"

	"github.com/Skotchmaster/user_service/internal/models"
)

func (r *GormRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *GormRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// List returns all users when scopeUserID is zero, otherwise only the rows
// owned by that user. Ownership filtering lives in the query so a non-admin
// listing never pulls other accounts out of the store.
func (r *GormRepo) List(ctx context.Context, scopeUserID uint) ([]models.User, error) {
	q := r.DB.WithContext(ctx).Model(&models.User{}).Order("id ASC")
	if scopeUserID != 0 {
		q = q.Where("id = ?", scopeUserID)
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *GormRepo) Create(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *GormRepo) Update(ctx context.Context, user *models.User) error {
	return translate(r.DB.WithContext(ctx).Save(user).Error)
}

func (r *GormRepo) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
