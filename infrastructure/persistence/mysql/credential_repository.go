package mysql

import (
	"context"
	"errors"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/shared"
	"github.com/example/storefront/infrastructure/persistence"
	"github.com/example/storefront/infrastructure/persistence/mysql/po"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialRepository stores bcrypt password hashes, one row per user.
// Password material never crosses into the account domain.
type CredentialRepository struct {
	db   *gorm.DB
	cost int
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db, cost: bcrypt.DefaultCost}
}

func (r *CredentialRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CredentialRepository) Register(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return err
	}
	return r.getDB(ctx).Save(&po.CredentialPO{UserID: userID, PasswordHash: string(hash)}).Error
}

func (r *CredentialRepository) Verify(ctx context.Context, userID, password string) (bool, error) {
	var credential po.CredentialPO
	err := r.getDB(ctx).Where("user_id = ?", userID).Take(&credential).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(credential.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *CredentialRepository) Update(ctx context.Context, userID, current, next string) error {
	ok, err := r.Verify(ctx, userID, current)
	if err != nil {
		return err
	}
	if !ok {
		return shared.NewValidationError("credentials", "currentPassword", "current password is incorrect")
	}
	return r.Register(ctx, userID, next)
}

var _ account.Credentials = (*CredentialRepository)(nil)
