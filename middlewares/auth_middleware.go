package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/utils"
)

const (
	ContextUserID     = "user_id"
	ContextRestaurant = "restaurant"

	LoginPath   = "/login"
	ListingPath = "/restaurant/"
)

// RequireLogin redirects anonymous visitors to the login page and puts
// the session's user id in the context for everyone else.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := utils.LoadSession(c)
		if !sess.LoggedIn() {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}

		c.Set(ContextUserID, sess.UserID)
		c.Next()
	}
}
