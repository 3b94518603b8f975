package utils

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionKeyState       = "state"
	sessionKeyAccessToken = "access_token"
	sessionKeyGoogleID    = "gplus_id"
	sessionKeyUserID      = "user_id"
	sessionKeyName        = "name"
	sessionKeyEmail       = "email"
	sessionKeyPicture     = "picture"
)

// LoginSession is the typed view of the cookie session shared by all
// handlers of one browser.
type LoginSession struct {
	State       string
	AccessToken string
	GoogleID    string
	UserID      uint
	Name        string
	Email       string
	Picture     string
}

// LoggedIn reports whether a user record has been resolved for the session.
func (s *LoginSession) LoggedIn() bool {
	return s.UserID != 0
}

// ConnectedAs reports whether the session already holds a token for googleID.
func (s *LoginSession) ConnectedAs(googleID string) bool {
	return s.AccessToken != "" && googleID != "" && s.GoogleID == googleID
}

func LoadSession(c *gin.Context) *LoginSession {
	store := sessions.Default(c)
	return &LoginSession{
		State:       sessionString(store, sessionKeyState),
		AccessToken: sessionString(store, sessionKeyAccessToken),
		GoogleID:    sessionString(store, sessionKeyGoogleID),
		UserID:      sessionUint(store, sessionKeyUserID),
		Name:        sessionString(store, sessionKeyName),
		Email:       sessionString(store, sessionKeyEmail),
		Picture:     sessionString(store, sessionKeyPicture),
	}
}

// SaveSession writes every field of s back to the store. Empty fields
// are removed rather than stored.
func SaveSession(c *gin.Context, s *LoginSession) error {
	store := sessions.Default(c)
	setSessionString(store, sessionKeyState, s.State)
	setSessionString(store, sessionKeyAccessToken, s.AccessToken)
	setSessionString(store, sessionKeyGoogleID, s.GoogleID)
	setSessionString(store, sessionKeyName, s.Name)
	setSessionString(store, sessionKeyEmail, s.Email)
	setSessionString(store, sessionKeyPicture, s.Picture)
	if s.UserID == 0 {
		store.Delete(sessionKeyUserID)
	} else {
		store.Set(sessionKeyUserID, s.UserID)
	}
	return store.Save()
}

func ClearSession(c *gin.Context) error {
	store := sessions.Default(c)
	store.Clear()
	return store.Save()
}

// AddFlash queues a message for the next rendered page. It is persisted
// by the next SaveSession or Flashes call.
func AddFlash(c *gin.Context, message string) {
	sessions.Default(c).AddFlash(message)
}

// Flash queues a message and persists the session right away.
func Flash(c *gin.Context, message string) {
	store := sessions.Default(c)
	store.AddFlash(message)
	if err := store.Save(); err != nil {
		ErrorLogger.Printf("Error saving flash message: %v", err)
	}
}

// Flashes pops all queued messages.
func Flashes(c *gin.Context) []string {
	store := sessions.Default(c)
	raw := store.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := store.Save(); err != nil {
		ErrorLogger.Printf("Error saving session after reading flashes: %v", err)
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

func sessionString(store sessions.Session, key string) string {
	v, _ := store.Get(key).(string)
	return v
}

func sessionUint(store sessions.Session, key string) uint {
	v, _ := store.Get(key).(uint)
	return v
}

func setSessionString(store sessions.Session, key, value string) {
	if value == "" {
		store.Delete(key)
		return
	}
	store.Set(key, value)
}
