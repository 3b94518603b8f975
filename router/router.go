package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/config"
	"github.com/yeremiapane/restaurant-menu/controllers"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/templates"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

func SetupRouter(cfg config.App, db *gorm.DB, auth *services.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(templates.Load())

	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		utils.ErrorLogger.Printf("Invalid trusted proxies %v: %v", cfg.TrustedProxies, err)
	}

	rateLimiter := middlewares.NewRateLimiter(cfg.RequestsPerIP, time.Second)
	r.Use(rateLimiter.RateLimit())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.Sessions(cfg.SessionName, []byte(cfg.SessionSecret), cfg.GinMode == gin.ReleaseMode))

	// Inisialisasi controller
	users := services.NewUserService(db)
	authCtrl := controllers.NewAuthController(auth, auth.ClientID)
	restaurantCtrl := controllers.NewRestaurantController(db)
	menuCtrl := controllers.NewMenuItemController(db, users)
	apiCtrl := controllers.NewAPIController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      SIGN-IN
	// ----------------------------------------------------------------
	r.GET("/login", authCtrl.ShowLogin)
	r.POST("/gconnect", middlewares.NewStrictRateLimiter(cfg.LoginRateLimit), authCtrl.Connect)
	r.GET("/gdisconnect", authCtrl.Disconnect)

	// ----------------------------------------------------------------
	//                      JSON API (no auth)
	// ----------------------------------------------------------------
	api := r.Group("/restaurant")
	api.Use(middlewares.CORSMiddlewares(cfg.CORSOrigin))
	{
		handleAPI(api, "/JSON", apiCtrl.RestaurantsJSON)
		handleAPI(api, "/:restaurant_id/menu/JSON", apiCtrl.RestaurantMenuJSON)
		handleAPI(api, "/:restaurant_id/menu/:menu_id/JSON", apiCtrl.MenuItemJSON)
	}

	// ----------------------------------------------------------------
	//                      PUBLIC PAGES
	// ----------------------------------------------------------------
	r.GET("/", restaurantCtrl.ShowRestaurants)
	r.GET("/restaurant/", restaurantCtrl.ShowRestaurants)
	r.GET("/restaurant/:restaurant_id/", menuCtrl.ShowMenu)
	r.GET("/restaurant/:restaurant_id/menu/", menuCtrl.ShowMenu)

	// ----------------------------------------------------------------
	//                      LOGGED-IN PAGES
	// ----------------------------------------------------------------
	authed := r.Group("/restaurant")
	authed.Use(middlewares.RequireLogin())
	handleForm(authed, "/new/", restaurantCtrl.NewRestaurant)

	owner := authed.Group("/:restaurant_id")
	owner.Use(middlewares.RestaurantOwner(db))
	handleForm(owner, "/edit/", restaurantCtrl.EditRestaurant)
	handleForm(owner, "/delete/", restaurantCtrl.DeleteRestaurant)
	handleForm(owner, "/menu/new/", menuCtrl.NewMenuItem)
	handleForm(owner, "/menu/:menu_id/edit", menuCtrl.EditMenuItem)
	handleForm(owner, "/menu/:menu_id/delete", menuCtrl.DeleteMenuItem)

	return r
}

// handleForm registers a page that renders on GET and submits on POST.
func handleForm(g *gin.RouterGroup, path string, h gin.HandlerFunc) {
	g.GET(path, h)
	g.POST(path, h)
}

// handleAPI registers a read-only endpoint together with its CORS
// preflight, which the group's CORS middleware answers.
func handleAPI(g *gin.RouterGroup, path string, h gin.HandlerFunc) {
	g.GET(path, h)
	g.OPTIONS(path, func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}
