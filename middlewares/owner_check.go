package middlewares

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// RestaurantOwner loads the restaurant named by :restaurant_id and lets
// the request through only for its owner. Anyone else is sent back to
// the public listing without an error. Must run after RequireLogin.
func RestaurantOwner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		restaurant, err := LoadRestaurant(c, db)
		if err != nil {
			return
		}

		userID := c.GetUint(ContextUserID)
		if !restaurant.OwnedBy(userID) {
			utils.InfoLogger.Printf("User %d is not the owner of restaurant %d, redirecting", userID, restaurant.ID)
			c.Redirect(http.StatusFound, ListingPath)
			c.Abort()
			return
		}

		c.Set(ContextRestaurant, restaurant)
		c.Next()
	}
}

// LoadRestaurant resolves :restaurant_id. On failure the response has
// already been written and the chain aborted.
func LoadRestaurant(c *gin.Context, db *gorm.DB) (*models.Restaurant, error) {
	id, err := strconv.ParseUint(c.Param("restaurant_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		c.Abort()
		return nil, ErrRestaurantNotFound
	}

	var restaurant models.Restaurant
	if err := db.WithContext(c.Request.Context()).First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrRestaurantNotFound)
		} else {
			utils.ErrorLogger.Printf("Error loading restaurant %d: %v", id, err)
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		c.Abort()
		return nil, err
	}
	return &restaurant, nil
}

// CurrentRestaurant returns the restaurant stored by RestaurantOwner.
func CurrentRestaurant(c *gin.Context) *models.Restaurant {
	v, ok := c.Get(ContextRestaurant)
	if !ok {
		return nil
	}
	restaurant, _ := v.(*models.Restaurant)
	return restaurant
}
