package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/controllers"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/templates"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

const testSecret = "test-session-secret-0123456789abcdef"

// loginAs puts userID into the session before the handlers run; 0 keeps
// the visitor anonymous.
func loginAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != 0 {
			utils.SaveSession(c, &utils.LoginSession{
				UserID:      userID,
				Name:        "Tester",
				AccessToken: "token",
			})
		}
		c.Next()
	}
}

func setupPagesRouter(db *gorm.DB, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(templates.Load())
	router.Use(middlewares.Sessions("test_session", []byte(testSecret), false))
	router.Use(loginAs(userID))

	restaurantCtrl := controllers.NewRestaurantController(db)
	menuCtrl := controllers.NewMenuItemController(db, services.NewUserService(db))

	router.GET("/restaurant/", restaurantCtrl.ShowRestaurants)
	router.GET("/restaurant/:restaurant_id/menu/", menuCtrl.ShowMenu)

	authed := router.Group("/restaurant", middlewares.RequireLogin())
	authed.GET("/new/", restaurantCtrl.NewRestaurant)
	authed.POST("/new/", restaurantCtrl.NewRestaurant)

	owner := authed.Group("/:restaurant_id", middlewares.RestaurantOwner(db))
	for path, h := range map[string]gin.HandlerFunc{
		"/edit/":                restaurantCtrl.EditRestaurant,
		"/delete/":              restaurantCtrl.DeleteRestaurant,
		"/menu/new/":            menuCtrl.NewMenuItem,
		"/menu/:menu_id/edit":   menuCtrl.EditMenuItem,
		"/menu/:menu_id/delete": menuCtrl.DeleteMenuItem,
	} {
		owner.GET(path, h)
		owner.POST(path, h)
	}
	return router
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
