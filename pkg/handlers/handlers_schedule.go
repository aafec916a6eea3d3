package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mlutter/dienstplan-api/pkg/database"
	"github.com/mlutter/dienstplan-api/pkg/models"
	"github.com/mlutter/dienstplan-api/pkg/scheduler"
)

// GetSchedule generates the duty roster for the requested month from the
// current roster and returns it. Invalid month values fall back to the
// current month inside the scheduler.
func (h *Handler) GetSchedule(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))

	var records []database.Employee
	if err := h.DB.Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Laden fehlgeschlagen"})
		return
	}

	employees := make([]models.Employee, 0, len(records))
	for _, record := range records {
		employees = append(employees, record.ToModel())
	}

	schedule := scheduler.Generate(employees, scheduler.Options{Month: month})

	// History tracking must not fail the request
	if err := database.RecordRun(h.DB, schedule); err != nil {
		log.Printf("could not record schedule run: %v", err)
	}

	c.JSON(http.StatusOK, schedule)
}

// ListRuns returns the recent generation history
func (h *Handler) ListRuns(c *gin.Context) {
	runs, err := database.RecentRuns(h.DB, 30)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Laden fehlgeschlagen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}
