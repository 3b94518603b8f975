package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
)

type AuthController struct {
	Auth     *services.AuthService
	ClientID string
}

func NewAuthController(auth *services.AuthService, clientID string) *AuthController {
	return &AuthController{Auth: auth, ClientID: clientID}
}

// ShowLogin issues a fresh anti-forgery state token for this session.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	sess := utils.LoadSession(c)
	sess.State = utils.NewStateToken()
	if err := utils.SaveSession(c, sess); err != nil {
		utils.ErrorLogger.Printf("Error saving login state: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	render(c, "login.html", gin.H{
		"STATE":     sess.State,
		"client_id": ac.ClientID,
	})
}

// Connect upgrades the one-time code posted by the sign-in button.
// Endpoint: POST /gconnect?state=<token>, body = authorization code
func (ac *AuthController) Connect(c *gin.Context) {
	code, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	sess := utils.LoadSession(c)
	result, err := ac.Auth.Connect(c.Request.Context(), sess, c.Query("state"), string(code))
	if err != nil {
		status, public := connectError(err)
		utils.ErrorLogger.Printf("Sign-in rejected (%d): %v", status, err)
		utils.RespondError(c, status, public)
		return
	}

	if result.AlreadyConnected {
		utils.RespondJSON(c, http.StatusOK, "Current user is already connected.", nil)
		return
	}

	utils.AddFlash(c, fmt.Sprintf("you are now logged in as %s", sess.Name))
	if err := utils.SaveSession(c, sess); err != nil {
		utils.ErrorLogger.Printf("Error saving session for user %d: %v", sess.UserID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.HTML(http.StatusOK, "user_info.html", gin.H{
		"name":    sess.Name,
		"picture": sess.Picture,
	})
}

// Disconnect revokes the Google token and clears the session.
func (ac *AuthController) Disconnect(c *gin.Context) {
	sess := utils.LoadSession(c)
	if err := ac.Auth.Disconnect(c.Request.Context(), sess); err != nil {
		if errors.Is(err, services.ErrNotConnected) {
			utils.RespondError(c, http.StatusUnauthorized, services.ErrNotConnected)
			return
		}
		utils.RespondError(c, http.StatusBadRequest, services.ErrRevokeFailed)
		return
	}

	if err := utils.ClearSession(c); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User successfully disconnected.", nil)
}

// connectError maps a sign-in failure to its status code and the
// message shown to the browser.
func connectError(err error) (int, error) {
	for _, e := range []struct {
		sentinel error
		status   int
	}{
		{services.ErrInvalidState, http.StatusUnauthorized},
		{services.ErrCodeExchange, http.StatusUnauthorized},
		{services.ErrSubjectMismatch, http.StatusUnauthorized},
		{services.ErrAudienceMismatch, http.StatusUnauthorized},
		{services.ErrTokenInfo, http.StatusInternalServerError},
		{services.ErrProfileFetch, http.StatusBadGateway},
	} {
		if errors.Is(err, e.sentinel) {
			return e.status, e.sentinel
		}
	}
	return http.StatusInternalServerError, errors.New("failed to sign in")
}
