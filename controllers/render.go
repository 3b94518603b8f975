package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/utils"
)

var ErrMenuItemNotFound = errors.New("menu item not found")

// render adds the session flashes and login state every page header uses.
func render(c *gin.Context, name string, data gin.H) {
	sess := utils.LoadSession(c)
	data["flashes"] = utils.Flashes(c)
	data["logged_in"] = sess.LoggedIn()
	c.HTML(http.StatusOK, name, data)
}

func paramID(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
