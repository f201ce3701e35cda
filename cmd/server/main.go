package main

import (
	"os"

	// Swagger imports
	_ "devlink/backend/docs" // This is important for swag to find the generated docs
)

// @title           Devlink API
// @version         1.0
// @description     Follow requests, privacy and notifications for the devlink social graph.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
