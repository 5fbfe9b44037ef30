package service

import (
	"context"
	"errors"

	"github.com/Skotchmaster/user_service/internal/models"
	"github.com/Skotchmaster/user_service/internal/repo"
	pkg_hash "github.com/Skotchmaster/user_service/pkg/hash"
	"github.com/Skotchmaster/user_service/pkg/logging"
)

type UserService struct {
	Repo *repo.GormRepo
}

// UpdateFields carries a partial update; nil means "leave as is".
type UpdateFields struct {
	Email    *string
	Username *string
	IsAdmin  *bool
	IsActive *bool
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListFor scopes the listing in the query itself: admins see every account,
// everyone else only their own.
func (s *UserService) ListFor(ctx context.Context, principal *models.User) ([]models.User, error) {
	scope := principal.ID
	if principal.IsAdmin {
		scope = 0
	}
	return s.Repo.List(ctx, scope)
}

func (s *UserService) Add(ctx context.Context, email, username, password string, isAdmin, isActive bool) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.add")

	if email == "" || password == "" || username == "" {
		return nil, ErrValidation
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: pwHash,
		IsAdmin:      isAdmin,
		IsActive:     isActive,
	}

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
			if _, lookupErr := s.Repo.GetByEmail(ctx, email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	l.Info("user_added", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, fields UpdateFields) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "users.update")

	var user *models.User
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		user, err = tx.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if fields.Email != nil {
			user.Email = *fields.Email
		}
		if fields.Username != nil {
			user.Username = *fields.Username
		}
		if fields.IsAdmin != nil {
			user.IsAdmin = *fields.IsAdmin
		}
		if fields.IsActive != nil {
			user.IsActive = *fields.IsActive
		}

		return tx.Update(ctx, user)
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			if fields.Email != nil {
				if existing, lookupErr := s.Repo.GetByEmail(ctx, *fields.Email); lookupErr == nil && existing.ID != id {
					return nil, ErrEmailTaken
				}
			}
			return nil, ErrUsernameTaken
		}
		l.Warn("update_failed", "user_id", id, "error", err)
		return nil, err
	}

	l.Info("user_updated", "user_id", user.ID)
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "users.delete")

	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	l.Info("user_deleted", "user_id", id)
	return nil
}
