package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/models"
)

// formValue is a submitted form field that may be absent, present but
// empty, or present with a value.
type formValue struct {
	Value   string
	Present bool
}

func postForm(c *gin.Context, key string) formValue {
	v, ok := c.GetPostForm(key)
	return formValue{Value: v, Present: ok}
}

// NonEmpty reports whether the field was submitted with a value.
func (f formValue) NonEmpty() bool {
	return f.Present && f.Value != ""
}

type restaurantForm struct {
	Name formValue
}

func bindRestaurantForm(c *gin.Context) restaurantForm {
	return restaurantForm{Name: postForm(c, "name")}
}

// ApplyTo changes the restaurant name only when a non-empty one was sent.
func (f restaurantForm) ApplyTo(r *models.Restaurant) bool {
	if !f.Name.NonEmpty() {
		return false
	}
	r.Name = f.Name.Value
	return true
}

type menuItemForm struct {
	Name        formValue
	Description formValue
	Price       formValue
	Course      formValue
}

func bindMenuItemForm(c *gin.Context) menuItemForm {
	return menuItemForm{
		Name:        postForm(c, "name"),
		Description: postForm(c, "description"),
		Price:       postForm(c, "price"),
		Course:      postForm(c, "course"),
	}
}

// Missing lists the fields absent from the submission.
func (f menuItemForm) Missing() []string {
	var missing []string
	for _, field := range []struct {
		name  string
		value formValue
	}{
		{"name", f.Name},
		{"description", f.Description},
		{"price", f.Price},
		{"course", f.Course},
	} {
		if !field.value.Present {
			missing = append(missing, field.name)
		}
	}
	return missing
}

// ApplyTo copies every non-empty field onto item and reports whether
// anything changed.
func (f menuItemForm) ApplyTo(item *models.MenuItem) bool {
	changed := false
	if f.Name.NonEmpty() {
		item.Name = f.Name.Value
		changed = true
	}
	if f.Description.NonEmpty() {
		item.Description = f.Description.Value
		changed = true
	}
	if f.Price.NonEmpty() {
		item.Price = f.Price.Value
		changed = true
	}
	if f.Course.NonEmpty() {
		item.Course = f.Course.Value
		changed = true
	}
	return changed
}
