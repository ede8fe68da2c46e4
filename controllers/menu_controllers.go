package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/events"
	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := mc.DB.Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// GetMenuByCategory -> GET /menu/by-category?category=Snacks
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'category' is required"))
		return
	}

	var items []models.MenuItem
	if err := mc.DB.Where("category = ?", category).Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Menu items in category: "+category, items)
}

// CreateMenuItem
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var body struct {
		Name     string   `json:"name" binding:"required"`
		Price    *float64 `json:"price" binding:"required"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if *body.Price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
		return
	}

	item := models.MenuItem{
		Name:     body.Name,
		Price:    *body.Price,
		Category: body.Category,
	}
	if item.Category == "" {
		item.Category = models.CategorySnacks
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(item)
	utils.InfoLogger.Printf("Menu item created: %s (%s)", item.Name, utils.FormatRupees(item.Price))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// UpdateMenuItem -> edits the catalog entry only. Prices already
// snapshotted onto open orders and history records keep their old value.
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	idStr := c.Param("item_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name     string   `json:"name"`
		Price    *float64 `json:"price"`
		Category string   `json:"category"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		item.Name = body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		item.Price = *body.Price
	}
	if body.Category != "" {
		item.Category = body.Category
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(item)
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> removes the catalog entry after confirmation. Open
// orders referencing it keep their snapshot and stay billable.
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	idStr := c.Param("item_id")

	var item models.MenuItem
	if err := mc.DB.First(&item, idStr).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, "Are you sure you want to delete this menu item?")
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMenuUpdate(gin.H{"deleted_id": item.ID})
	utils.InfoLogger.Printf("Menu item %d deleted (%s)", item.ID, item.Name)
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"id": item.ID})
}
