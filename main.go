package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/teriyakki-jin/Churn-Guard-AI/churn"
	"github.com/teriyakki-jin/Churn-Guard-AI/config"
	"github.com/teriyakki-jin/Churn-Guard-AI/controllers"
	"github.com/teriyakki-jin/Churn-Guard-AI/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Connect to PostgreSQL database
	dsn := os.Getenv("DATABASE_URL")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Set the global DB in the config package and migrate models
	config.DB = db
	controllers.MigrateModels(db) // This will migrate User and PredictionHistory

	// Seed the default admin account
	if err := config.InitAdminUser(config.DB); err != nil {
		log.Fatalf("Failed to initialize admin user: %v", err)
	}

	// Load the prediction model once; the service comes up degraded when
	// the artifact is missing and /api/predict answers 503 until fixed.
	svc := churn.NewService(
		getenv("MODEL_DIR", "."),
		getenv("DATA_PATH", "data/Customer-Churn.csv"),
		getenv("MODEL_VERSION", "v2"),
	)
	controllers.SetChurnService(svc)

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(middlewares.RequestLogger(slog.Default()))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Churn Guard AI API",
			"version": "2.0.0",
			"status":  "running",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})
	r.POST("/signup", controllers.Signup)
	r.POST("/login", middlewares.RateLimit(5), controllers.Login)

	// Protected routes using auth middleware
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/ws", controllers.HandleWebSocket)
	auth.POST("/predict", middlewares.RateLimit(20), controllers.Predict)
	auth.GET("/stats", controllers.GetStats)
	auth.GET("/analysis", controllers.GetAnalysis)
	auth.GET("/model-info", controllers.GetModelInfo)
	auth.GET("/history", controllers.GetHistory)
	auth.GET("/download-csv", controllers.DownloadCSV)
	auth.GET("/profile", controllers.GetProfile)
	auth.POST("/promote-admin", controllers.PromoteToAdmin)
	auth.DELETE("/history/my-records", controllers.DeleteMyRecords)
	auth.DELETE("/history/all", controllers.DeleteAllRecords)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8002"
	}
	r.Run(":" + port)
}
