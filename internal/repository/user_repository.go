package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/natural-botanicals/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Upsert 以 username 为键写入，已存在时覆盖密码与显示名
	Upsert(ctx context.Context, user *model.User) error
}

type userRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &userRepository{db: db} }

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	return &u, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "username"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "display_name", "updated_at"}),
	}).Create(user).Error
	if err != nil {
		return storeErr("upsert user", err)
	}
	return nil
}
