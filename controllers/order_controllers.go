package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/events"
	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/utils"
)

// OrderController mutates seat orders. Every handler follows the same
// read-modify-write cycle: load the full table record, change it in
// memory, save the whole record back. One user drives the terminal, so
// there is no locking around the cycle.
type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

func (oc *OrderController) loadTable(c *gin.Context) (*models.Table, bool) {
	tableID := c.Param("table_id")
	var table models.Table
	if err := oc.DB.First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return nil, false
	}
	return &table, true
}

// seatIndex parses the seat index parameter. A negative or malformed
// value is reported as -1 and treated like a stale index by the caller.
func seatIndex(c *gin.Context) int {
	idx, err := strconv.Atoi(c.Param("seat_index"))
	if err != nil {
		return -1
	}
	return idx
}

// respondStaleSeat answers for a seat index that no longer exists. A
// stale index is a no-op, not an error: the screen that sent it simply
// re-renders from the broadcast it missed.
func respondStaleSeat(c *gin.Context, table *models.Table) {
	utils.RespondJSON(c, http.StatusOK, "Seat no longer exists, nothing changed", table)
}

// AddSeat -> adds one more guest to the table
func (oc *OrderController) AddSeat(c *gin.Context) {
	table, ok := oc.loadTable(c)
	if !ok {
		return
	}

	seat := table.AddSeat(time.Now())
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.InfoLogger.Printf("Table %d: added %s", table.ID, seat.Name)
	utils.RespondJSON(c, http.StatusCreated, "Seat added", table)
}

// AddItem -> adds a menu item to a seat's order, or bumps its quantity.
// Name and price are snapshotted from the catalog as it stands right now.
func (oc *OrderController) AddItem(c *gin.Context) {
	var body struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, ok := oc.loadTable(c)
	if !ok {
		return
	}
	seat, ok := table.Seat(seatIndex(c))
	if !ok {
		respondStaleSeat(c, table)
		return
	}

	var item models.MenuItem
	if err := oc.DB.First(&item, body.MenuItemID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	seat.AddItem(item)
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.RespondJSON(c, http.StatusOK, "Item added", table)
}

// DecrementItem -> lowers a line's quantity by one; the line disappears
// at zero. No matching line means no write at all.
func (oc *OrderController) DecrementItem(c *gin.Context) {
	menuItemID, err := strconv.ParseUint(c.Param("menu_item_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, ok := oc.loadTable(c)
	if !ok {
		return
	}
	seat, ok := table.Seat(seatIndex(c))
	if !ok {
		respondStaleSeat(c, table)
		return
	}

	if !seat.DecrementItem(uint(menuItemID)) {
		utils.RespondJSON(c, http.StatusOK, "No such item on this order, nothing changed", table)
		return
	}

	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.RespondJSON(c, http.StatusOK, "Item quantity updated", table)
}

// RemoveLine -> removes an order line outright, whatever its quantity
func (oc *OrderController) RemoveLine(c *gin.Context) {
	lineIndex, err := strconv.Atoi(c.Param("line_index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, ok := oc.loadTable(c)
	if !ok {
		return
	}
	seat, ok := table.Seat(seatIndex(c))
	if !ok {
		respondStaleSeat(c, table)
		return
	}

	if lineIndex < 0 || lineIndex >= len(seat.Orders) {
		utils.RespondError(c, http.StatusBadRequest, ErrOutOfRange)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, fmt.Sprintf("Remove %s from order?", seat.Orders[lineIndex].Name))
		return
	}

	seat.RemoveLine(lineIndex)
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.RespondJSON(c, http.StatusOK, "Item removed", table)
}

// RemoveSeat -> deletes the seat; anything unpaid on it is discarded,
// not billed. The confirmation message names only the seat.
func (oc *OrderController) RemoveSeat(c *gin.Context) {
	table, ok := oc.loadTable(c)
	if !ok {
		return
	}

	idx := seatIndex(c)
	seat, ok := table.Seat(idx)
	if !ok {
		respondStaleSeat(c, table)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, fmt.Sprintf("Remove %s and their orders?", seat.Name))
		return
	}

	name := seat.Name
	table.RemoveSeat(idx)
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastTableUpdate(*table)
	utils.InfoLogger.Printf("Table %d: removed %s", table.ID, name)
	utils.RespondJSON(c, http.StatusOK, "Seat removed", table)
}

// SettleSeat -> bills one seat. The payment is appended to history, then
// the seat's order is cleared; the seat itself stays for the next round.
// History append and table write are two separate store operations: a
// crash in between leaves the settled record with the order still on the
// seat.
func (oc *OrderController) SettleSeat(c *gin.Context) {
	table, ok := oc.loadTable(c)
	if !ok {
		return
	}
	seat, ok := table.Seat(seatIndex(c))
	if !ok {
		respondStaleSeat(c, table)
		return
	}

	total := seat.Total()
	if total == 0 {
		utils.RespondJSON(c, http.StatusOK, "Nothing to settle", table)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, fmt.Sprintf("Confirm payment of %s for %s?",
			utils.FormatRupees(total), seat.Name))
		return
	}

	record := models.NewHistoryRecord(table.ID, seat, time.Now())
	if err := oc.DB.Create(&record).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	seat.ClearOrders()
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastHistoryAppend(record)
	events.BroadcastTableUpdate(*table)
	utils.InfoLogger.Printf("Table %d: settled %s for %s", table.ID, record.CustomerName,
		utils.FormatRupees(record.Total))
	utils.RespondJSON(c, http.StatusOK, "Payment recorded", gin.H{
		"table":  table,
		"record": record,
	})
}

// SettleTable -> bills every seat with an open order, one history record
// per seat, written sequentially. Afterwards the whole seats list is
// emptied, unlike per-seat settlement which keeps the seat.
func (oc *OrderController) SettleTable(c *gin.Context) {
	table, ok := oc.loadTable(c)
	if !ok {
		return
	}

	total := table.Total()
	if total == 0 {
		utils.RespondJSON(c, http.StatusOK, "Nothing to settle", table)
		return
	}

	if !confirmed(c) {
		respondConfirmRequired(c, fmt.Sprintf("Confirm FULL TABLE payment of %s?",
			utils.FormatRupees(total)))
		return
	}

	now := time.Now()
	records := make([]models.HistoryRecord, 0, len(table.Customers))
	for i := range table.Customers {
		seat := &table.Customers[i]
		if seat.Total() == 0 {
			continue
		}
		record := models.NewHistoryRecord(table.ID, seat, now)
		if err := oc.DB.Create(&record).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		records = append(records, record)
	}

	table.ClearSeats()
	if err := oc.DB.Save(table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for _, record := range records {
		events.BroadcastHistoryAppend(record)
	}
	events.BroadcastTableUpdate(*table)
	utils.InfoLogger.Printf("Table %d: settled in full for %s (%d payments)", table.ID,
		utils.FormatRupees(total), len(records))
	utils.RespondJSON(c, http.StatusOK, "Table settled", gin.H{
		"table":   table,
		"records": records,
	})
}
