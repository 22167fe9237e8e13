package postgres

import (
	"context"
	"errors"

	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/directory"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) directory.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetAll(ctx context.Context) ([]*directoryuser.User, error) {
	var users []*directoryuser.User
	err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*directoryuser.User, error) {
	var user directoryuser.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&directoryuser.User{}).Count(&n).Error
	return n, err
}

func (r *UserRepository) Create(ctx context.Context, user *directoryuser.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) Update(ctx context.Context, user *directoryuser.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&directoryuser.User{}, id)
	return res.RowsAffected > 0, res.Error
}
