package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xurshidboymirzaev403-a11y/logistics/config"
	"github.com/xurshidboymirzaev403-a11y/logistics/handler"
	"github.com/xurshidboymirzaev403-a11y/logistics/middlewares"
	"github.com/xurshidboymirzaev403-a11y/logistics/store/gormstore"
)

const defaultPort = "8080"

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	config.ConnectDatabaseWithRetry()
	st := gormstore.New(config.GetDB())
	if err := st.AutoMigrate(); err != nil {
		config.GetLogger().Fatalf("migration failed: %v", err)
	}

	h := handler.New(st)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Admin-Mode"},
		AllowCredentials: false,
	}))
	r.Use(middlewares.AuthMiddleware())

	r.POST("/api/login", h.Login)

	api := r.Group("/api", middlewares.RequireAuth())
	{
		api.GET("/items", h.ListItems)
		api.POST("/items", h.CreateItem)
		api.PUT("/items/:id", h.UpdateItem)
		api.DELETE("/items/:id", h.DeleteItem)

		api.GET("/suppliers", h.ListSuppliers)
		api.POST("/suppliers", h.CreateSupplier)
		api.PUT("/suppliers/:id", h.UpdateSupplier)
		api.DELETE("/suppliers/:id", h.DeleteSupplier)

		api.GET("/orders", h.ListOrders)
		api.POST("/orders", h.CreateOrder)
		api.GET("/orders/:id", h.GetOrder)
		api.POST("/orders/:id/transition", h.TransitionOrder)
		api.DELETE("/orders/:id", h.DeleteOrder)
		api.GET("/orders/:id/distribution", h.GetDistribution)
		api.POST("/orders/:id/lines", h.AddOrderLine)
		api.GET("/orders/:id/payments", h.GetPaymentHistory)
		api.GET("/orders/:id/payments/overview", h.GetPaymentOverview)
		api.POST("/orders/:id/payments", h.CreatePayment)
		api.POST("/orders/:id/payments/percentage", h.CreatePercentagePayment)
		api.GET("/orders/:id/payments/report", h.ExportPaymentSummary)

		api.DELETE("/order-lines/:id", h.DeleteOrderLine)
		api.POST("/order-lines/:id/replace", h.ReplaceOrderLine)

		api.POST("/allocations", h.CreateAllocation)
		api.DELETE("/allocations/:id", h.DeleteAllocation)

		api.GET("/audit-logs", h.ListAuditLogs)
		api.DELETE("/audit-logs", h.ClearAuditLogs)

		api.GET("/users", h.ListUsers)
		api.POST("/users", h.CreateUser)

		api.GET("/backup", h.ExportSnapshot)
		api.POST("/backup", h.ImportSnapshot)
	}

	if err := r.Run(":" + port); err != nil {
		config.GetLogger().Fatalf("server stopped: %v", err)
	}
}
