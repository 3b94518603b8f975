package services

import "errors"

var (
	ErrInvalidState     = errors.New("invalid state parameter")
	ErrCodeExchange     = errors.New("failed to upgrade the authorization code")
	ErrTokenInfo        = errors.New("access token info returned an error")
	ErrSubjectMismatch  = errors.New("token's user ID doesn't match given user ID")
	ErrAudienceMismatch = errors.New("token's client ID doesn't match app's")
	ErrProfileFetch     = errors.New("failed to fetch user profile")
	ErrNotConnected     = errors.New("current user not connected")
	ErrRevokeFailed     = errors.New("failed to revoke token for given user")
)
