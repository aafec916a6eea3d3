package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mlutter/dienstplan-api/pkg/auth"
	"github.com/mlutter/dienstplan-api/pkg/database"
	"github.com/mlutter/dienstplan-api/pkg/handlers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	if err := auth.EnsureAdminExists(db); err != nil {
		log.Printf("could not create admin user: %v", err)
	}
	h := &handlers.Handler{DB: db}

	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Dienstplan API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	api := r.Group("/api")
	{
		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.AuthMiddleware(), h.CreateEmployee)
		api.PATCH("/employees/:id", h.AuthMiddleware(), h.UpdateEmployee)
		api.DELETE("/employees/:id", h.AuthMiddleware(), h.DeleteEmployee)

		api.GET("/schedule", h.GetSchedule)
		api.GET("/schedule/runs", h.AuthMiddleware(), h.ListRuns)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
