package service

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrEmailTaken          = errors.New("user already exists with this email")
	ErrUsernameTaken       = errors.New("user already exists with this username")
	ErrUserNotFound        = errors.New("user does not exist")
	ErrInvalidCredentials  = errors.New("password is incorrect")
	ErrInactiveAccount     = errors.New("user is not active")
	ErrSamePassword        = errors.New("new password can't be the same as the old one")
	ErrInvalidAccessToken  = errors.New("invalid access token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
