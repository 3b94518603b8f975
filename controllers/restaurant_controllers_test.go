package controllers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-menu/models"
	"github.com/yeremiapane/restaurant-menu/testutil"
)

func TestShowRestaurants_TemplateDependsOnLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	testutil.SeedRestaurant(t, db, owner, "Zucchini Bar")
	testutil.SeedRestaurant(t, db, owner, "Alpha Diner")

	w := get(setupPagesRouter(db, 0), "/restaurant/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Add Restaurant")
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "Alpha Diner"), strings.Index(body, "Zucchini Bar"))

	w = get(setupPagesRouter(db, owner.ID), "/restaurant/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Add Restaurant")
	assert.Contains(t, w.Body.String(), "/edit/")
}

func TestNewRestaurant_RequiresLogin(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupPagesRouter(db, 0)

	w := postForm(router, "/restaurant/new/", url.Values{"name": {"Sneaky"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	assert.Zero(t, count)
}

func TestNewRestaurant(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantName   string
		wantRows   int64
	}{
		{"named", url.Values{"name": {"Bistro"}}, http.StatusFound, "Bistro", 1},
		{"empty name accepted", url.Values{"name": {""}}, http.StatusFound, "", 1},
		{"name key missing", url.Values{"other": {"x"}}, http.StatusBadRequest, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.NewTestDB(t)
			owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")

			w := postForm(setupPagesRouter(db, owner.ID), "/restaurant/new/", tt.form)
			assert.Equal(t, tt.wantStatus, w.Code)

			var restaurants []models.Restaurant
			require.NoError(t, db.Find(&restaurants).Error)
			require.Len(t, restaurants, int(tt.wantRows))
			if tt.wantRows == 1 {
				assert.Equal(t, tt.wantName, restaurants[0].Name)
				assert.Equal(t, owner.ID, restaurants[0].UserID)
				assert.Equal(t, "/restaurant/", w.Header().Get("Location"))
			}
		})
	}
}

func TestEditRestaurant(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner, "Bistro")
	router := setupPagesRouter(db, owner.ID)
	path := fmt.Sprintf("/restaurant/%d/edit/", restaurant.ID)

	w := get(router, path)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Bistro")

	w = postForm(router, path, url.Values{"name": {""}})
	assert.Equal(t, http.StatusFound, w.Code)
	var reloaded models.Restaurant
	require.NoError(t, db.First(&reloaded, restaurant.ID).Error)
	assert.Equal(t, "Bistro", reloaded.Name)

	w = postForm(router, path, url.Values{"name": {"Brasserie"}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/restaurant/", w.Header().Get("Location"))
	require.NoError(t, db.First(&reloaded, restaurant.ID).Error)
	assert.Equal(t, "Brasserie", reloaded.Name)
}

func TestRestaurantMutations_NonOwnerIsRedirected(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	intruder := testutil.SeedUser(t, db, "Eve", "eve@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner, "Bistro")
	item := testutil.SeedMenuItem(t, db, restaurant, "Soup", "$4.00")
	router := setupPagesRouter(db, intruder.ID)

	paths := []string{
		fmt.Sprintf("/restaurant/%d/edit/", restaurant.ID),
		fmt.Sprintf("/restaurant/%d/delete/", restaurant.ID),
		fmt.Sprintf("/restaurant/%d/menu/new/", restaurant.ID),
		fmt.Sprintf("/restaurant/%d/menu/%d/edit", restaurant.ID, item.ID),
		fmt.Sprintf("/restaurant/%d/menu/%d/delete", restaurant.ID, item.ID),
	}
	form := url.Values{
		"name":        {"Hijacked"},
		"description": {"x"},
		"price":       {"$0"},
		"course":      {"Dessert"},
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			for _, w := range []*httptest.ResponseRecorder{
				get(router, path),
				postForm(router, path, form),
			} {
				assert.Equal(t, http.StatusFound, w.Code)
				assert.Equal(t, "/restaurant/", w.Header().Get("Location"))
			}
		})
	}

	var reloaded models.Restaurant
	require.NoError(t, db.First(&reloaded, restaurant.ID).Error)
	assert.Equal(t, "Bistro", reloaded.Name)

	var items []models.MenuItem
	require.NoError(t, db.Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, "Soup", items[0].Name)
	assert.Equal(t, "$4.00", items[0].Price)
}

func TestRestaurantMutations_UnknownRestaurantIsNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	router := setupPagesRouter(db, owner.ID)

	assert.Equal(t, http.StatusNotFound, get(router, "/restaurant/999/edit/").Code)
	assert.Equal(t, http.StatusNotFound, get(router, "/restaurant/abc/edit/").Code)
}

func TestDeleteRestaurant_RemovesItsMenuItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	owner := testutil.SeedUser(t, db, "Ada", "ada@example.com")
	doomed := testutil.SeedRestaurant(t, db, owner, "Doomed")
	kept := testutil.SeedRestaurant(t, db, owner, "Kept")
	for i := 0; i < 3; i++ {
		testutil.SeedMenuItem(t, db, doomed, fmt.Sprintf("Dish %d", i), "$1")
	}
	survivor := testutil.SeedMenuItem(t, db, kept, "Survivor", "$2")
	router := setupPagesRouter(db, owner.ID)
	path := fmt.Sprintf("/restaurant/%d/delete/", doomed.ID)

	w := get(router, path)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Doomed")

	w = postForm(router, path, url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/restaurant/", w.Header().Get("Location"))

	var count int64
	db.Model(&models.Restaurant{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.MenuItem{}).Where("restaurant_id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)

	var remaining []models.MenuItem
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)
}
