package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/events"
	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/utils"
)

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables -> the dashboard's table grid
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> one table with its seats and orders
func (tc *TableController) GetTableByID(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// OpenTable -> called when a table is tapped on the dashboard. An empty
// table gets its first seat automatically so ordering can start right
// away.
func (tc *TableController) OpenTable(c *gin.Context) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := tc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if len(table.Customers) == 0 {
		seat := table.AddSeat(time.Now())
		if err := tc.DB.Save(&table).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		events.BroadcastTableUpdate(table)
		utils.InfoLogger.Printf("Table %d opened with %s", table.ID, seat.Name)
	}

	utils.RespondJSON(c, http.StatusOK, "Table opened", table)
}

// GetDashboard -> per-table occupancy summary plus overall stats
func (tc *TableController) GetDashboard(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type tableSummary struct {
		ID       uint    `json:"id"`
		Occupied bool    `json:"occupied"`
		Guests   int     `json:"guests"`
		Total    float64 `json:"total"`
	}

	summaries := make([]tableSummary, 0, len(tables))
	occupiedCount := 0
	var openAmount float64

	for i := range tables {
		t := &tables[i]
		occupied := t.Occupied()
		if occupied {
			occupiedCount++
		}
		openAmount += t.Total()
		summaries = append(summaries, tableSummary{
			ID:       t.ID,
			Occupied: occupied,
			Guests:   t.GuestCount(),
			Total:    t.Total(),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard", gin.H{
		"tables": summaries,
		"stats": gin.H{
			"occupied":    occupiedCount,
			"available":   len(tables) - occupiedCount,
			"total":       len(tables),
			"open_amount": openAmount,
		},
	})
}
