package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/repo"
	pkg_hash "github.com/Skotchmaster/user_service/pkg/hash"
	"github.com/Skotchmaster/user_service/pkg/logging"
	"github.com/Skotchmaster/user_service/pkg/tokens"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Handler
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) Register(ctx context.Context, email, password, username string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if email == "" || password == "" || username == "" {
		return nil, ErrValidation
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: pwHash,
		IsActive:     true,
	}

	// The pre-checks are advisory; the unique indexes are the guard that
	// holds under concurrent registration.
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if _, err := tx.GetByUsername(ctx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		return tx.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, s.resolveDuplicate(ctx, email)
		}
		return nil, err
	}

	l.Info("user_registered", "user_id", user.ID)
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "reason", "unknown email")
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	if !pkg_hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "password mismatch", "user_id", user.ID)
		return nil, nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Warn("login_failed", "reason", "inactive account", "user_id", user.ID)
		return nil, nil, ErrInactiveAccount
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign tokens", "error", err)
		return nil, nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return pair, user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.change_password")

	var user *models.User
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		user, err = tx.GetByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if !pkg_hash.CheckPassword(user.PasswordHash, oldPassword) {
			return ErrInvalidCredentials
		}

		if pkg_hash.CheckPassword(user.PasswordHash, newPassword) {
			return ErrSamePassword
		}

		pwHash, err := pkg_hash.HashPassword(newPassword)
		if err != nil {
			return err
		}

		user.PasswordHash = pwHash
		return tx.Update(ctx, user)
	})
	if err != nil {
		l.Warn("change_password_failed", "error", err)
		return nil, err
	}

	l.Info("password_changed", "user_id", user.ID)
	return user, nil
}

// Refresh accepts an expired access token as long as its signature checks
// out; the refresh token itself must be valid and carry the refresh subject.
func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	refreshClaims, err := s.Tokens.DecodeRefresh(refreshToken)
	if err != nil {
		l.Warn("refresh_failed", "reason", "refresh token rejected", "error", err)
		return nil, ErrInvalidRefreshToken
	}
	if refreshClaims.Subject != tokens.RefreshSubject {
		l.Warn("refresh_failed", "reason", "missing refresh subject")
		return nil, ErrInvalidRefreshToken
	}

	accessClaims, err := s.Tokens.DecodeAccessExpired(accessToken)
	if err != nil {
		l.Warn("refresh_failed", "reason", "access token rejected", "error", err)
		return nil, ErrInvalidAccessToken
	}

	pair, err := s.issuePair(accessClaims.UserID)
	if err != nil {
		l.Error("refresh_failed", "reason", "cannot sign tokens", "error", err)
		return nil, err
	}

	l.Info("tokens_refreshed", "user_id", accessClaims.UserID)
	return pair, nil
}

func (s *AuthService) issuePair(userID uint) (*TokenPair, error) {
	access, err := s.Tokens.EncodeAccess(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := s.Tokens.EncodeRefresh()
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// resolveDuplicate decides which unique index fired after a racy insert lost
// to a concurrent writer. Runs outside the rolled-back transaction.
func (s *AuthService) resolveDuplicate(ctx context.Context, email string) error {
	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	}
	return ErrUsernameTaken
}
