package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

// APIController serves the unauthenticated JSON views.
type APIController struct {
	DB *gorm.DB
}

func NewAPIController(db *gorm.DB) *APIController {
	return &APIController{DB: db}
}

// RestaurantsJSON
// Endpoint: GET /restaurant/JSON
func (ac *APIController) RestaurantsJSON(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := ac.DB.WithContext(c.Request.Context()).Order("id asc").Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]models.RestaurantJSON, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, r.Serialize())
	}
	c.JSON(http.StatusOK, gin.H{"restaurants": out})
}

// RestaurantMenuJSON
// Endpoint: GET /restaurant/:restaurant_id/menu/JSON
func (ac *APIController) RestaurantMenuJSON(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurant_id")
	if !ok {
		utils.RespondError(c, http.StatusNotFound, middlewares.ErrRestaurantNotFound)
		return
	}

	var items []models.MenuItem
	if err := ac.DB.WithContext(c.Request.Context()).
		Where("restaurant_id = ?", restaurantID).
		Order("id asc").
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"MenuItems": models.SerializeMenuItems(items)})
}

// MenuItemJSON
// Endpoint: GET /restaurant/:restaurant_id/menu/:menu_id/JSON
func (ac *APIController) MenuItemJSON(c *gin.Context) {
	restaurantID, ok := paramID(c, "restaurant_id")
	menuID, ok2 := paramID(c, "menu_id")
	if !ok || !ok2 {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}

	var item models.MenuItem
	err := ac.DB.WithContext(c.Request.Context()).
		Where("id = ? AND restaurant_id = ?", menuID, restaurantID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"Menu_Item": item.Serialize()})
}
