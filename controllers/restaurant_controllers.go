package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// ShowRestaurants lists every restaurant by name.
func (rc *RestaurantController) ShowRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.WithContext(c.Request.Context()).Order("name asc").Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	sess := utils.LoadSession(c)
	template := "publicrestaurants.html"
	if sess.LoggedIn() {
		template = "restaurants.html"
	}
	render(c, template, gin.H{
		"restaurants": restaurants,
		"user_id":     sess.UserID,
	})
}

// NewRestaurant creates a restaurant owned by the signed-in user.
func (rc *RestaurantController) NewRestaurant(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		render(c, "newRestaurant.html", gin.H{})
		return
	}

	form := bindRestaurantForm(c)
	if !form.Name.Present {
		utils.RespondError(c, http.StatusBadRequest, errors.New("form field 'name' is required"))
		return
	}

	restaurant := models.Restaurant{
		Name:   form.Name.Value,
		UserID: c.GetUint(middlewares.ContextUserID),
	}
	if err := rc.DB.WithContext(c.Request.Context()).Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d created by user %d", restaurant.ID, restaurant.UserID)
	utils.Flash(c, fmt.Sprintf("New Restaurant %s Successfully Created", restaurant.Name))
	c.Redirect(http.StatusFound, middlewares.ListingPath)
}

// EditRestaurant renames a restaurant. An empty name leaves it as is.
func (rc *RestaurantController) EditRestaurant(c *gin.Context) {
	restaurant := middlewares.CurrentRestaurant(c)
	if c.Request.Method != http.MethodPost {
		render(c, "editRestaurant.html", gin.H{"restaurant": restaurant})
		return
	}

	if bindRestaurantForm(c).ApplyTo(restaurant) {
		if err := rc.DB.WithContext(c.Request.Context()).Save(restaurant).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.Flash(c, fmt.Sprintf("Restaurant Successfully Edited %s", restaurant.Name))
	}
	c.Redirect(http.StatusFound, middlewares.ListingPath)
}

// DeleteRestaurant removes the restaurant together with its menu items.
func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	restaurant := middlewares.CurrentRestaurant(c)
	if c.Request.Method != http.MethodPost {
		render(c, "deleteRestaurant.html", gin.H{"restaurant": restaurant})
		return
	}

	err := rc.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(restaurant).Error
	})
	if err != nil {
		utils.ErrorLogger.Printf("Error deleting restaurant %d: %v", restaurant.ID, err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d deleted with its menu items", restaurant.ID)
	utils.Flash(c, fmt.Sprintf("%s Successfully Deleted", restaurant.Name))
	c.Redirect(http.StatusFound, middlewares.ListingPath)
}
