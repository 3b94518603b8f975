package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
)

// AuthService drives the Google sign-in handshake and teardown against
// a typed login session.
type AuthService struct {
	Users    *UserService
	Provider IdentityProvider
	ClientID string
}

func NewAuthService(users *UserService, provider IdentityProvider, clientID string) *AuthService {
	return &AuthService{
		Users:    users,
		Provider: provider,
		ClientID: clientID,
	}
}

type ConnectResult struct {
	AlreadyConnected bool
	NewUser          bool
	User             *models.User
}

// Connect verifies the posted state and authorization code and, on
// success, fills sess with the signed-in identity. sess is left
// untouched when an error is returned.
func (as *AuthService) Connect(ctx context.Context, sess *utils.LoginSession, state, code string) (*ConnectResult, error) {
	if sess.State == "" || state != sess.State {
		return nil, ErrInvalidState
	}

	creds, err := as.Provider.Exchange(ctx, code)
	if err != nil {
		return nil, wrapAs(ErrCodeExchange, err)
	}

	info, err := as.Provider.TokenInfo(ctx, creds.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInfo, err)
	}
	if info.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrTokenInfo, info.Error)
	}

	log := utils.ErrorLogger.WithFields(logrus.Fields{
		"subject":   creds.Subject,
		"user_id":   info.UserID,
		"issued_to": info.IssuedTo,
	})
	if info.UserID != creds.Subject {
		log.Warn("Token's user ID doesn't match given user ID")
		return nil, ErrSubjectMismatch
	}
	if info.IssuedTo != as.ClientID {
		log.Warn("Token's client ID doesn't match app's")
		return nil, ErrAudienceMismatch
	}

	if sess.ConnectedAs(creds.Subject) {
		return &ConnectResult{AlreadyConnected: true}, nil
	}

	profile, err := as.Provider.UserInfo(ctx, creds.AccessToken)
	if err != nil {
		return nil, wrapAs(ErrProfileFetch, err)
	}

	user, created, err := as.Users.FindOrCreate(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("resolve user %s: %w", profile.Email, err)
	}

	sess.AccessToken = creds.AccessToken
	sess.GoogleID = creds.Subject
	sess.Name = profile.Name
	sess.Email = profile.Email
	sess.Picture = profile.Picture
	sess.UserID = user.ID

	utils.InfoLogger.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"email":    user.Email,
		"new_user": created,
	}).Info("User connected")

	return &ConnectResult{NewUser: created, User: user}, nil
}

// Disconnect revokes the stored access token and resets sess.
func (as *AuthService) Disconnect(ctx context.Context, sess *utils.LoginSession) error {
	if sess.AccessToken == "" {
		return ErrNotConnected
	}
	if err := as.Provider.Revoke(ctx, sess.AccessToken); err != nil {
		utils.ErrorLogger.Printf("Revoke failed for user %d: %v", sess.UserID, err)
		return wrapAs(ErrRevokeFailed, err)
	}

	*sess = utils.LoginSession{}
	return nil
}

func wrapAs(sentinel, err error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
