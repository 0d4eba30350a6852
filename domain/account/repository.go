package account

import "context"

// Repository persists user profiles.
type Repository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	// EmailTaken and PhoneTaken check uniqueness excluding the given user id.
	EmailTaken(ctx context.Context, email, excludeUserID string) (bool, error)
	PhoneTaken(ctx context.Context, phone, excludeUserID string) (bool, error)
}

// Credentials is the external collaborator that owns password material.
// Register stores credentials for a new user; Verify checks a sign-in
// attempt; Update replaces the password after verifying the current one,
// failing with shared.ErrInvalidInput on a mismatch. Hashing and validation
// policy live behind this boundary.
type Credentials interface {
	Register(ctx context.Context, userID, password string) error
	Verify(ctx context.Context, userID, password string) (bool, error)
	Update(ctx context.Context, userID, current, next string) error
}
