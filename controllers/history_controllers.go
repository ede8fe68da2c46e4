package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/services"
	"github.com/snackpoint/pos/utils"
)

type HistoryController struct {
	DB *gorm.DB
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{DB: db}
}

// GetAllHistory -> the full payment log, newest first
func (hc *HistoryController) GetAllHistory(c *gin.Context) {
	var records []models.HistoryRecord
	if err := hc.DB.Order("id DESC").Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales history", records)
}

// GetHistoryByTable -> payments for one table, newest first
func (hc *HistoryController) GetHistoryByTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var records []models.HistoryRecord
	if err := hc.DB.Where("table_id = ?", tableID).
		Order("id DESC").
		Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales history for table "+tableID, records)
}

// GetHistoryByDate -> payments whose date part matches, e.g. ?date=1/2/2006
func (hc *HistoryController) GetHistoryByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'date' is required"))
		return
	}

	var records []models.HistoryRecord
	if err := hc.DB.Where("date LIKE ?", date+"%").
		Order("id DESC").
		Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Sales history for "+date, records)
}

// GetSalesReport -> revenue, order counts, day groups and top sellers,
// recomputed from the full history on every request
func (hc *HistoryController) GetSalesReport(c *gin.Context) {
	var records []models.HistoryRecord
	if err := hc.DB.Order("id DESC").Find(&records).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	report := services.BuildSalesReport(records)
	utils.RespondJSON(c, http.StatusOK, "Sales report", report)
}
