package po

import (
	"time"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/basket"
)

type UserPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Username  string    `gorm:"size:150;uniqueIndex;not null"`
	FirstName string    `gorm:"size:150"`
	LastName  string    `gorm:"size:150"`
	FullName  string    `gorm:"size:300"`
	Email     string    `gorm:"size:254;index"`
	Phone     string    `gorm:"size:20;index"`
	AvatarSrc string    `gorm:"size:255"`
	AvatarAlt string    `gorm:"size:200"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
}

func (UserPO) TableName() string { return "users" }

func FromUser(u *account.User) *UserPO {
	return &UserPO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		AvatarSrc: u.AvatarSrc,
		AvatarAlt: u.AvatarAlt,
		CreatedAt: u.CreatedAt,
	}
}

func (p *UserPO) ToDomain() *account.User {
	return &account.User{
		ID:        p.ID,
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		AvatarSrc: p.AvatarSrc,
		AvatarAlt: p.AvatarAlt,
		CreatedAt: p.CreatedAt,
	}
}

// CredentialPO keeps password hashes out of the users table.
type CredentialPO struct {
	UserID       string `gorm:"primaryKey;size:64"`
	PasswordHash string `gorm:"size:100;not null"`
}

func (CredentialPO) TableName() string { return "credentials" }

// BasketLinePO enforces the one-line-per-(user, product) invariant with a
// composite unique key, the target of the upsert in the repository.
type BasketLinePO struct {
	UserID    string `gorm:"primaryKey;size:64"`
	ProductID string `gorm:"primaryKey;size:64"`
	Quantity  int    `gorm:"not null"`
}

func (BasketLinePO) TableName() string { return "basket_lines" }

func (p *BasketLinePO) ToDomain() basket.Line {
	return basket.Line{UserID: p.UserID, ProductID: p.ProductID, Quantity: p.Quantity}
}
