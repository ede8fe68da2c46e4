package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/controllers"
	"github.com/snackpoint/pos/models"
	"github.com/snackpoint/pos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type tableEnvelope struct {
	Status  bool         `json:"status"`
	Message string       `json:"message"`
	Data    models.Table `json:"data"`
}

type settleEnvelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Table   models.Table           `json:"table"`
		Record  models.HistoryRecord   `json:"record"`
		Records []models.HistoryRecord `json:"records"`
	} `json:"data"`
}

func setupOrderTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.Table{}, &models.MenuItem{}, &models.HistoryRecord{}); err != nil {
		panic(err)
	}

	table := models.Table{ID: 3, Customers: []models.Customer{}}
	if err := db.Create(&table).Error; err != nil {
		panic(err)
	}
	menu := []models.MenuItem{
		{ID: 101, Name: "Kachori", Price: 20.00, Category: models.CategorySnacks},
		{ID: 301, Name: "Chai", Price: 10.00, Category: models.CategoryDrinks},
	}
	if err := db.Create(&menu).Error; err != nil {
		panic(err)
	}
	return db
}

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/tables/:table_id/open", tableCtrl.OpenTable)
	router.POST("/tables/:table_id/seats", orderCtrl.AddSeat)
	router.DELETE("/tables/:table_id/seats/:seat_index", orderCtrl.RemoveSeat)
	router.POST("/tables/:table_id/seats/:seat_index/items", orderCtrl.AddItem)
	router.PATCH("/tables/:table_id/seats/:seat_index/items/:menu_item_id/decrement", orderCtrl.DecrementItem)
	router.DELETE("/tables/:table_id/seats/:seat_index/lines/:line_index", orderCtrl.RemoveLine)
	router.POST("/tables/:table_id/seats/:seat_index/settle", orderCtrl.SettleSeat)
	router.POST("/tables/:table_id/settle", orderCtrl.SettleTable)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func addItem(t *testing.T, router *gin.Engine, menuItemID uint) {
	w := doJSON(t, router, "POST", "/tables/3/seats/0/items", map[string]uint{"menu_item_id": menuItemID})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpenTableAddsFirstSeat(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)

	w := doJSON(t, router, "POST", "/tables/3/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Customers, 1)
	assert.Equal(t, "Seat 1", resp.Data.Customers[0].Name)

	// Reopening an occupied table does not add another seat
	w = doJSON(t, router, "POST", "/tables/3/open", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Customers, 1)
}

func TestAddItemSnapshotsAndAggregates(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)

	addItem(t, router, 301)
	addItem(t, router, 301)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Len(t, table.Customers[0].Orders, 1)
	assert.Equal(t, 2, table.Customers[0].Orders[0].Qty)
	assert.Equal(t, "Chai", table.Customers[0].Orders[0].Name)
	assert.Equal(t, 10.00, table.Customers[0].Orders[0].Price)

	// The order line keeps its snapshot when the menu changes
	assert.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", 301).Update("price", 99.0).Error)
	addItem(t, router, 101)
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Equal(t, 10.00, table.Customers[0].Orders[0].Price)
	assert.Equal(t, 40.00, table.Total())
}

func TestDecrementItemDropsLineAtZero(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)
	addItem(t, router, 301)
	addItem(t, router, 301)

	w := doJSON(t, router, "PATCH", "/tables/3/seats/0/items/301/decrement", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Equal(t, 1, table.Customers[0].Orders[0].Qty)

	w = doJSON(t, router, "PATCH", "/tables/3/seats/0/items/301/decrement", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Empty(t, table.Customers[0].Orders)

	// No matching line is a no-op, not an error
	w = doJSON(t, router, "PATCH", "/tables/3/seats/0/items/301/decrement", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "No such item on this order, nothing changed", resp.Message)
}

func TestRemoveLineNeedsConfirmation(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)
	addItem(t, router, 101)

	// Without confirm: 409 and no state change
	w := doJSON(t, router, "DELETE", "/tables/3/seats/0/lines/0", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Remove Kachori from order?", resp.Message)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Len(t, table.Customers[0].Orders, 1)

	// Confirmed: line removed
	w = doJSON(t, router, "DELETE", "/tables/3/seats/0/lines/0?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Empty(t, table.Customers[0].Orders)

	// Stale line index fails without a write
	w = doJSON(t, router, "DELETE", "/tables/3/seats/0/lines/5?confirm=true", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRemoveSeatDiscardsUnpaidItems(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)
	doJSON(t, router, "POST", "/tables/3/seats", nil)
	addItem(t, router, 301)

	w := doJSON(t, router, "DELETE", "/tables/3/seats/0", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Remove Seat 1 and their orders?", resp.Message)

	w = doJSON(t, router, "DELETE", "/tables/3/seats/0?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Len(t, table.Customers, 1)
	assert.Equal(t, "Seat 2", table.Customers[0].Name)

	// Unpaid items went nowhere near history
	var historyCount int64
	db.Model(&models.HistoryRecord{}).Count(&historyCount)
	assert.Equal(t, int64(0), historyCount)

	// A stale seat index is silently ignored
	w = doJSON(t, router, "DELETE", "/tables/3/seats/7?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Seat no longer exists, nothing changed", resp.Message)
}

func TestSettleSeatMovesOrderToHistory(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)
	addItem(t, router, 301)
	addItem(t, router, 301)
	addItem(t, router, 101)

	// Without confirm: message names the amount, nothing recorded
	w := doJSON(t, router, "POST", "/tables/3/seats/0/settle", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var confirm tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirm))
	assert.Equal(t, "Confirm payment of ₹40.00 for Seat 1?", confirm.Message)
	var historyCount int64
	db.Model(&models.HistoryRecord{}).Count(&historyCount)
	assert.Equal(t, int64(0), historyCount)

	w = doJSON(t, router, "POST", "/tables/3/seats/0/settle?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp settleEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40.00, resp.Data.Record.Total)
	assert.Equal(t, "Seat 1", resp.Data.Record.CustomerName)
	assert.Len(t, resp.Data.Record.Items, 2)

	// The seat survives settlement with an empty order
	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Len(t, table.Customers, 1)
	assert.Empty(t, table.Customers[0].Orders)

	db.Model(&models.HistoryRecord{}).Count(&historyCount)
	assert.Equal(t, int64(1), historyCount)
}

func TestSettleSeatZeroTotalIsNoOp(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)

	w := doJSON(t, router, "POST", "/tables/3/seats/0/settle?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nothing to settle", resp.Message)

	var historyCount int64
	db.Model(&models.HistoryRecord{}).Count(&historyCount)
	assert.Equal(t, int64(0), historyCount)
}

func TestSettleTableRemovesEverySeat(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)
	doJSON(t, router, "POST", "/tables/3/seats", nil)
	addItem(t, router, 301)

	w := doJSON(t, router, "POST", "/tables/3/seats/1/items", map[string]uint{"menu_item_id": 101})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/tables/3/settle", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	var confirm tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirm))
	assert.Equal(t, "Confirm FULL TABLE payment of ₹30.00?", confirm.Message)

	w = doJSON(t, router, "POST", "/tables/3/settle?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp settleEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Records, 2)

	// Full-table settlement removes the seats, not just their orders
	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Empty(t, table.Customers)

	var historyCount int64
	db.Model(&models.HistoryRecord{}).Count(&historyCount)
	assert.Equal(t, int64(2), historyCount)
}

func TestSettleTableZeroTotalIsNoOp(t *testing.T) {
	db := setupOrderTestDB()
	router := setupOrderRouter(db)
	doJSON(t, router, "POST", "/tables/3/open", nil)

	w := doJSON(t, router, "POST", "/tables/3/settle?confirm=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp tableEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Nothing to settle", resp.Message)

	var table models.Table
	assert.NoError(t, db.First(&table, 3).Error)
	assert.Len(t, table.Customers, 1)
}
