package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/ynym/garage-api/internal/config"
	"github.com/ynym/garage-api/internal/database"
	"github.com/ynym/garage-api/internal/handlers"
	"github.com/ynym/garage-api/internal/middleware"
	"github.com/ynym/garage-api/internal/repository"
	"github.com/ynym/garage-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Configure logging
	logrus.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}
	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			logrus.WithError(err).Fatal("Failed to add indexes")
		}
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Redis store")
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions("garage_session", store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	fuelRecordRepo := repository.NewFuelRecordRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	vehicleService := services.NewVehicleService(vehicleRepo)
	fuelRecordService := services.NewFuelRecordService(fuelRecordRepo, vehicleRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	fuelRecordHandler := handlers.NewFuelRecordHandler(fuelRecordService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Garage API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// Vehicle routes (protected)
		vehicles := api.Group("/vehicles")
		vehicles.Use(middleware.RequireAuth())
		{
			vehicles.GET("", vehicleHandler.ListVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PATCH("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		// Fuel record routes (protected)
		fuelRecords := api.Group("/fuel-records")
		fuelRecords.Use(middleware.RequireAuth())
		{
			fuelRecords.GET("", fuelRecordHandler.ListFuelRecords)
			fuelRecords.POST("", fuelRecordHandler.CreateFuelRecord)
			fuelRecords.GET("/:id", fuelRecordHandler.GetFuelRecord)
			fuelRecords.PATCH("/:id", fuelRecordHandler.UpdateFuelRecord)
			fuelRecords.DELETE("/:id", fuelRecordHandler.DeleteFuelRecord)
		}
	}

	// Start server
	logrus.WithField("addr", cfg.ServerAddr).Info("Server starting")
	if err := r.Run(cfg.ServerAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
