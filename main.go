package main

import (
	"log"
	"os"

	"github.com/fidelity-club/fidelity-be/config"
	"github.com/fidelity-club/fidelity-be/routes"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Connect to database
	config.ConnectDatabase()

	// Run goose migrations (default admin, redemption unique index)
	sqlDB, err := config.GetSQLDB()
	if err != nil {
		log.Fatal("Failed to get database connection:", err)
	}
	if err := config.RunMigrations(sqlDB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Blob store for images and QR codes
	config.InitializeStorage()

	// WebSocket hub for live dashboard events
	config.InitializeWebSocketHub()

	// Setup routes
	r := routes.SetupRoutes()

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
