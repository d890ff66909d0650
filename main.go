package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bersihkilat/laundry-api/config"
	"github.com/bersihkilat/laundry-api/controllers"
	"github.com/bersihkilat/laundry-api/middleware"
	"github.com/bersihkilat/laundry-api/models"
	"github.com/bersihkilat/laundry-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Bersih Kilat laundry API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.ServiceMaterial{},
		&models.Material{},
		&models.MaterialStockMovement{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderHistory{},
		&models.Employee{},
		&models.Expense{},
		&models.Asset{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Photo storage is optional: without a bucket the upload endpoint
	// reports storage unavailable
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitPhotoService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, order photo uploads disabled")
	}

	router := setupRouter(cfg)

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures CORS, the public routes and the authenticated
// admin routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Public self-service: booking and tracking, no authentication
		v1.POST("/bookings", controllers.CreateBooking)
		v1.GET("/track/:code", controllers.TrackOrder)

		// Everything else requires a valid staff JWT
		authorized := v1.Group("")
		authorized.Use(middleware.EnsureValidToken(cfg))
		{
			authorized.POST("/users", controllers.CreateUser)
			authorized.GET("/users/me", controllers.GetCurrentUser)
			authorized.PATCH("/users/me", controllers.UpdateCurrentUser)

			authorized.GET("/orders", controllers.ListOrders)
			authorized.GET("/orders/:id", controllers.GetOrder)
			authorized.POST("/orders/walk-in", controllers.CreateWalkInOrder)
			authorized.POST("/orders/:id/confirm", controllers.ConfirmBooking)
			authorized.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)
			authorized.PATCH("/orders/:id/payment", controllers.UpdateOrderPayment)
			authorized.POST("/orders/:id/notes", controllers.AddOrderNote)
			authorized.POST("/orders/:id/photo", controllers.UploadOrderPhoto)
			authorized.POST("/orders/history/:id/notified", controllers.MarkHistoryNotified)

			authorized.GET("/materials", controllers.ListMaterials)
			authorized.GET("/materials/low-stock", controllers.ListLowStockMaterials)
			authorized.POST("/materials", controllers.CreateMaterial)
			authorized.PATCH("/materials/:id", controllers.UpdateMaterial)
			authorized.POST("/materials/:id/stock/add", controllers.AddMaterialStock)
			authorized.POST("/materials/:id/stock/adjust", controllers.AdjustMaterialStock)
			authorized.GET("/materials/:id/movements", controllers.ListMaterialMovements)

			authorized.GET("/services", controllers.ListServices)
			authorized.POST("/services", controllers.CreateService)
			authorized.PATCH("/services/:id", controllers.UpdateService)
			authorized.PUT("/services/:id/recipe", controllers.SetServiceRecipe)

			authorized.GET("/customers", controllers.ListCustomers)
			authorized.GET("/customers/:id", controllers.GetCustomer)
			authorized.POST("/customers", controllers.CreateCustomer)
			authorized.PATCH("/customers/:id", controllers.UpdateCustomer)
			authorized.GET("/customers/:id/orders", controllers.ListCustomerOrders)
			authorized.GET("/customers/:id/aggregates", controllers.CheckCustomerAggregates)

			authorized.GET("/employees", controllers.ListEmployees)
			authorized.POST("/employees", controllers.CreateEmployee)
			authorized.PATCH("/employees/:id", controllers.UpdateEmployee)
			authorized.DELETE("/employees/:id", controllers.DeleteEmployee)

			authorized.GET("/expenses", controllers.ListExpenses)
			authorized.POST("/expenses", controllers.CreateExpense)
			authorized.DELETE("/expenses/:id", controllers.DeleteExpense)

			authorized.GET("/assets", controllers.ListAssets)
			authorized.POST("/assets", controllers.CreateAsset)
			authorized.DELETE("/assets/:id", controllers.DeleteAsset)

			authorized.GET("/reports/revenue", controllers.RevenueSummary)
			authorized.GET("/reports/order-status", controllers.OrderStatusCounts)
			authorized.GET("/reports/stock-movements", controllers.StockMovementJournal)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bersih Kilat laundry API is running",
	})
}
