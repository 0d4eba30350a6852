// Package account orchestrates sign-up, sign-in and profile management.
// Password material never enters this package: hashing and verification
// live behind the domain Credentials interface.
package account

import (
	"context"
	"errors"

	"github.com/example/storefront/domain/account"
	"github.com/example/storefront/domain/shared"
	apperrors "github.com/example/storefront/pkg/errors"
	"github.com/example/storefront/pkg/logger"

	"go.uber.org/zap"
)

// OrderClaimer hands the session's pending order to a signed-in user.
type OrderClaimer interface {
	Claim(ctx context.Context, sessionID string, user *account.User) error
}

// BasketMerger folds the anonymous session basket into the user basket.
type BasketMerger interface {
	MergeSessionIntoUser(ctx context.Context, sessionID, userID string) error
}

// Service wires the account boundary to the post-sign-in side effects:
// claiming the pending order and merging the session basket.
type Service struct {
	userRepo    account.Repository
	credentials account.Credentials
	claimer     OrderClaimer
	merger      BasketMerger
}

func NewService(
	userRepo account.Repository,
	credentials account.Credentials,
	claimer OrderClaimer,
	merger BasketMerger,
) *Service {
	return &Service{
		userRepo:    userRepo,
		credentials: credentials,
		claimer:     claimer,
		merger:      merger,
	}
}

// ============================================================================
// DTOs
// ============================================================================

type SignUpRequest struct {
	Name     string `json:"name"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AvatarResponse struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type ProfileResponse struct {
	ID       string         `json:"id"`
	Username string         `json:"username"`
	FullName string         `json:"fullName"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Avatar   AvatarResponse `json:"avatar"`
}

type ProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type AvatarRequest struct {
	Src string `json:"src" binding:"required"`
	Alt string `json:"alt"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func toProfileResponse(u *account.User) *ProfileResponse {
	return &ProfileResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.DisplayName(),
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   AvatarResponse{Src: u.AvatarSrc, Alt: u.AvatarAlt},
	}
}

// ============================================================================
// Operations
// ============================================================================

// SignUp registers a new user and runs the post-sign-in side effects for
// the current session.
func (s *Service) SignUp(ctx context.Context, sessionID string, req SignUpRequest) (*ProfileResponse, error) {
	if req.Username == "" || req.Password == "" {
		fields := map[string]string{}
		if req.Username == "" {
			fields["username"] = "username is required"
		}
		if req.Password == "" {
			fields["password"] = "password is required"
		}
		return nil, apperrors.Validation("invalid sign-up request", fields)
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Validation("invalid sign-up request", map[string]string{
			"username": "username is already taken",
		})
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := account.NewUser(req.Username, req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := s.credentials.Register(ctx, user.ID, req.Password); err != nil {
		return nil, err
	}

	if err := s.afterSignIn(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// SignIn verifies credentials and runs the post-sign-in side effects.
// Unknown usernames and wrong passwords are indistinguishable to callers.
func (s *Service) SignIn(ctx context.Context, sessionID string, req SignInRequest) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	ok, err := s.credentials.Verify(ctx, user.ID, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	if err := s.afterSignIn(ctx, sessionID, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// afterSignIn claims the pending anonymous order and merges the session
// basket. A stale or already-claimed pending order is logged and dropped;
// only infrastructure failures undo the sign-in itself.
func (s *Service) afterSignIn(ctx context.Context, sessionID string, user *account.User) error {
	if err := s.claimer.Claim(ctx, sessionID, user); err != nil {
		if !apperrors.Is(err, apperrors.CodeOrderNotFound) && !apperrors.Is(err, apperrors.CodeOrderState) {
			return err
		}
		logger.Warn("pending order claim skipped",
			zap.String("session_id", sessionID),
			zap.String("user_id", user.ID),
			zap.Error(err))
	}
	return s.merger.MergeSessionIntoUser(ctx, sessionID, user.ID)
}

// Profile returns the user's profile.
func (s *Service) Profile(ctx context.Context, userID string) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, err
	}
	return toProfileResponse(user), nil
}

// UpdateProfile applies fullName, email and phone. Updates are partial:
// empty fields keep their stored values. Email and phone must be unique
// across users; violations come back per field.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req ProfileRequest) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, err
	}

	fields := map[string]string{}
	if req.Email != "" && req.Email != user.Email {
		taken, err := s.userRepo.EmailTaken(ctx, req.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			fields["email"] = "email is already in use"
		}
	}
	if req.Phone != "" && req.Phone != user.Phone {
		taken, err := s.userRepo.PhoneTaken(ctx, req.Phone, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			fields["phone"] = "phone is already in use"
		}
	}
	if len(fields) > 0 {
		return nil, apperrors.Validation("profile update rejected", fields)
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

// ChangePassword replaces the user's password after verifying the current
// one. A mismatch comes back as a field-level validation error.
func (s *Service) ChangePassword(ctx context.Context, userID string, req PasswordRequest) error {
	fields := map[string]string{}
	if req.CurrentPassword == "" {
		fields["currentPassword"] = "current password is required"
	}
	if req.NewPassword == "" {
		fields["newPassword"] = "new password is required"
	}
	if len(fields) > 0 {
		return apperrors.Validation("invalid password change request", fields)
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return apperrors.UserNotFound()
		}
		return err
	}

	if err := s.credentials.Update(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && errors.Is(err, shared.ErrInvalidInput) {
			return apperrors.Validation("password change rejected", map[string]string{
				domainErr.Field: domainErr.Message,
			})
		}
		return err
	}
	return nil
}

// UpdateAvatar replaces the avatar image reference.
func (s *Service) UpdateAvatar(ctx context.Context, userID string, req AvatarRequest) (*ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, apperrors.UserNotFound()
		}
		return nil, err
	}

	user.AvatarSrc = req.Src
	user.AvatarAlt = req.Alt
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}
