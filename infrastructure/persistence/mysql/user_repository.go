package mysql

import (
	"context"
	"errors"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *UserRepository) Save(ctx context.Context, u *account.User) error {
	return r.getDB(ctx).Save(po.FromUser(u)).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*account.User, error) {
	var userPO po.UserPO
	err := r.getDB(ctx).Where("id = ?", id).Take(&userPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user")
		}
		return nil, err
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*account.User, error) {
	var userPO po.UserPO
	err := r.getDB(ctx).Where("username = ?", username).Take(&userPO).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("user")
		}
		return nil, err
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&po.UserPO{}).
		Where("email = ? AND id <> ?", email, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) PhoneTaken(ctx context.Context, phone, excludeUserID string) (bool, error) {
	if phone == "" {
		return false, nil
	}
	var count int64
	err := r.getDB(ctx).Model(&po.UserPO{}).
		Where("phone = ? AND id <> ?", phone, excludeUserID).
		Count(&count).Error
	return count > 0, err
}

var _ account.Repository = (*UserRepository)(nil)
