package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sancruz-dev/dotnet-waterwise/config"
	"github.com/sancruz-dev/dotnet-waterwise/controllers"
	"github.com/sancruz-dev/dotnet-waterwise/logger"
	"github.com/sancruz-dev/dotnet-waterwise/messaging"
	"github.com/sancruz-dev/dotnet-waterwise/middlewares"
)

func main() {
	// Load environment variables
	godotenv.Load()
	cfg := config.LoadFromEnv()

	zapLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zapLogger.Sync()
	zap.ReplaceGlobals(zapLogger)

	// Connect to PostgreSQL database. TranslateError maps driver-specific
	// unique violations onto gorm.ErrDuplicatedKey, which the ingestion
	// conflict handling relies on.
	db, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}

	config.DB = db
	if err := controllers.MigrateModels(db); err != nil {
		zapLogger.Fatal("failed to migrate models", zap.Error(err))
	}
	if err := controllers.SeedDatabase(db); err != nil {
		zapLogger.Fatal("failed to seed database", zap.Error(err))
	}

	// The broker connection is opened once here; a failed connect leaves
	// messaging disabled for the life of the process, never failing requests.
	rabbit := messaging.NewService(cfg.RabbitMQ, zapLogger)
	defer rabbit.Close()

	controllers.Init(rabbit, cfg.Risk.APIURL, cfg.Auth.SecretKey)

	// Set up Gin router with CORS configuration
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes
	r.POST("/login", controllers.Login)
	r.POST("/sensor-data", controllers.ReceiveData)
	r.GET("/degradation-levels", controllers.GetDegradationLevels)
	r.GET("/degradation-levels/:id", controllers.GetDegradationLevel)

	// Protected routes using auth middleware
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware([]byte(cfg.Auth.SecretKey)))
	auth.GET("/ws", controllers.HandleWebSocket)
	auth.GET("/properties", controllers.GetProperties)
	auth.GET("/properties/:id", controllers.GetProperty)
	auth.POST("/properties", controllers.CreateProperty)
	auth.PUT("/properties/:id", controllers.UpdateProperty)
	auth.DELETE("/properties/:id", controllers.DeleteProperty)
	auth.GET("/producers", controllers.GetProducers)
	auth.GET("/producers/:id", controllers.GetProducer)
	auth.POST("/producers", controllers.CreateProducer)
	auth.DELETE("/producers/:id", controllers.DeleteProducer)
	auth.POST("/degradation-levels", controllers.CreateDegradationLevel)
	auth.DELETE("/degradation-levels/:id", controllers.DeleteDegradationLevel)
	auth.GET("/sensors", controllers.GetSensors)
	auth.POST("/sensors", controllers.CreateSensor)
	auth.GET("/readings", controllers.GetReadings)
	auth.GET("/download-csv", controllers.DownloadCSV)

	zapLogger.Info("waterwise backend listening", zap.String("port", cfg.Port))
	r.Run(":" + cfg.Port)
}
