package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/snackpoint/pos/controllers"
	"github.com/snackpoint/pos/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	menuCtrl := controllers.NewMenuController(db)
	historyCtrl := controllers.NewHistoryController(db)
	backupCtrl := controllers.NewBackupController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Live updates for the POS screens
	r.GET("/ws", controllers.StreamHandler)

	api := r.Group("/api")
	{
		// Tables and the dashboard
		api.GET("/dashboard", tableCtrl.GetDashboard)
		api.GET("/tables", tableCtrl.GetAllTables)
		api.GET("/tables/:table_id", tableCtrl.GetTableByID)
		api.POST("/tables/:table_id/open", tableCtrl.OpenTable)

		// Seat ordering and settlement
		api.POST("/tables/:table_id/seats", orderCtrl.AddSeat)
		api.DELETE("/tables/:table_id/seats/:seat_index", orderCtrl.RemoveSeat)
		api.POST("/tables/:table_id/seats/:seat_index/items", orderCtrl.AddItem)
		api.PATCH("/tables/:table_id/seats/:seat_index/items/:menu_item_id/decrement", orderCtrl.DecrementItem)
		api.DELETE("/tables/:table_id/seats/:seat_index/lines/:line_index", orderCtrl.RemoveLine)
		api.POST("/tables/:table_id/seats/:seat_index/settle", orderCtrl.SettleSeat)
		api.POST("/tables/:table_id/settle", orderCtrl.SettleTable)

		// Menu management
		api.GET("/menu", menuCtrl.GetAllMenuItems)
		api.GET("/menu/by-category", menuCtrl.GetMenuByCategory)
		api.POST("/menu", menuCtrl.CreateMenuItem)
		api.PATCH("/menu/:item_id", menuCtrl.UpdateMenuItem)
		api.DELETE("/menu/:item_id", menuCtrl.DeleteMenuItem)

		// Sales history and reporting
		api.GET("/history", historyCtrl.GetAllHistory)
		api.GET("/history/by-date", historyCtrl.GetHistoryByDate)
		api.GET("/history/table/:table_id", historyCtrl.GetHistoryByTable)
		api.GET("/history/report", historyCtrl.GetSalesReport)

		// Whole-store snapshots
		backup := api.Group("/backup")
		backup.Use(middlewares.NewBackupRateLimiter())
		{
			backup.GET("/export", backupCtrl.ExportData)
			backup.POST("/import", backupCtrl.ImportData)
		}
	}

	return r
}
