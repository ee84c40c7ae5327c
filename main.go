package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"fern-and-paper/app"
	"fern-and-paper/db"
	"fern-and-paper/logger"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	envLoaded := false
	if os.Getenv("ENV") != "production" {
		// Use Overload so .env values override system environment variables
		envLoaded = godotenv.Overload(".env") == nil
	}

	if err := logger.Init(); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if envLoaded {
		logger.L.Infof("Loaded environment variables from .env")
	}

	// Initialize application
	if err := app.Initialize(); err != nil {
		logger.L.Fatalf("Failed to initialize application: %v", err)
	}
	defer db.CloseDB()

	// Start server
	// Listen on 0.0.0.0 to accept connections from all interfaces
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if port[0] == ':' {
		port = port[1:]
	}

	logger.L.Infof("🚀 Server listening on 0.0.0.0:%s", port)
	if err := http.ListenAndServe("0.0.0.0:"+port, nil); err != nil {
		logger.L.Fatalf("Server stopped: %v", err)
	}
}
