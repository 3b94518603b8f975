package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/middlewares"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/services"
	"github.com/yeremiapane/restaurant-menu/utils"
	"gorm.io/gorm"
)

type MenuItemController struct {
	DB    *gorm.DB
	Users *services.UserService
}

func NewMenuItemController(db *gorm.DB, users *services.UserService) *MenuItemController {
	return &MenuItemController{DB: db, Users: users}
}

// ShowMenu is public; the owner gets the editable page.
func (mc *MenuItemController) ShowMenu(c *gin.Context) {
	restaurant, err := middlewares.LoadRestaurant(c, mc.DB)
	if err != nil {
		return
	}

	var items []models.MenuItem
	if err := mc.DB.WithContext(c.Request.Context()).
		Where("restaurant_id = ?", restaurant.ID).
		Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	creator, err := mc.Users.GetUserInfo(c.Request.Context(), restaurant.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	template := "publicmenu.html"
	if restaurant.OwnedBy(utils.LoadSession(c).UserID) {
		template = "menu.html"
	}
	render(c, template, gin.H{
		"items":      items,
		"restaurant": restaurant,
		"creator":    creator,
	})
}

// NewMenuItem adds an item to the restaurant; every field must be submitted.
func (mc *MenuItemController) NewMenuItem(c *gin.Context) {
	restaurant := middlewares.CurrentRestaurant(c)
	if c.Request.Method != http.MethodPost {
		render(c, "newmenuitem.html", gin.H{
			"restaurant_id": restaurant.ID,
			"courses":       models.Courses,
		})
		return
	}

	form := bindMenuItemForm(c)
	if missing := form.Missing(); len(missing) > 0 {
		utils.RespondError(c, http.StatusBadRequest,
			fmt.Errorf("missing form fields: %s", strings.Join(missing, ", ")))
		return
	}

	item := models.MenuItem{
		Name:         form.Name.Value,
		Description:  form.Description.Value,
		Price:        form.Price.Value,
		Course:       form.Course.Value,
		RestaurantID: restaurant.ID,
		UserID:       restaurant.UserID,
	}
	if err := mc.DB.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.Flash(c, fmt.Sprintf("New Menu %s Item Successfully Created", item.Name))
	c.Redirect(http.StatusFound, menuPath(restaurant.ID))
}

// EditMenuItem applies only the fields submitted with a value.
func (mc *MenuItemController) EditMenuItem(c *gin.Context) {
	restaurant := middlewares.CurrentRestaurant(c)
	item, ok := mc.loadMenuItem(c, restaurant.ID)
	if !ok {
		return
	}

	if c.Request.Method != http.MethodPost {
		render(c, "editmenuitem.html", gin.H{
			"restaurant_id": restaurant.ID,
			"menu_id":       item.ID,
			"item":          item,
			"courses":       models.Courses,
		})
		return
	}

	if bindMenuItemForm(c).ApplyTo(item) {
		if err := mc.DB.WithContext(c.Request.Context()).Save(item).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.Flash(c, "Menu Item Successfully Edited")
	c.Redirect(http.StatusFound, menuPath(restaurant.ID))
}

// DeleteMenuItem removes one item of the restaurant.
func (mc *MenuItemController) DeleteMenuItem(c *gin.Context) {
	restaurant := middlewares.CurrentRestaurant(c)
	item, ok := mc.loadMenuItem(c, restaurant.ID)
	if !ok {
		return
	}

	if c.Request.Method != http.MethodPost {
		render(c, "deleteMenuItem.html", gin.H{
			"restaurant_id": restaurant.ID,
			"item":          item,
		})
		return
	}

	if err := mc.DB.WithContext(c.Request.Context()).Delete(item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.Flash(c, "Menu Item Successfully Deleted")
	c.Redirect(http.StatusFound, menuPath(restaurant.ID))
}

// loadMenuItem finds :menu_id inside the given restaurant only.
func (mc *MenuItemController) loadMenuItem(c *gin.Context, restaurantID uint) (*models.MenuItem, bool) {
	id, ok := paramID(c, "menu_id")
	if !ok {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return nil, false
	}

	var item models.MenuItem
	err := mc.DB.WithContext(c.Request.Context()).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, ErrMenuItemNotFound)
		return nil, false
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, false
	}
	return &item, true
}

func menuPath(restaurantID uint) string {
	return fmt.Sprintf("/restaurant/%d/menu/", restaurantID)
}
