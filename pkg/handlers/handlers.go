package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mlutter/dienstplan-api/pkg/auth"
	"github.com/mlutter/dienstplan-api/pkg/database"
	"github.com/mlutter/dienstplan-api/pkg/models"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB *gorm.DB
}

// AuthMiddleware verifies the JWT token for protected routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// ListEmployees returns all employees, newest first
func (h *Handler) ListEmployees(c *gin.Context) {
	var records []database.Employee
	if err := h.DB.Order("created_at desc").Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Laden fehlgeschlagen"})
		return
	}

	employees := make([]models.Employee, 0, len(records))
	for _, record := range records {
		employees = append(employees, record.ToModel())
	}
	c.JSON(http.StatusOK, gin.H{"data": employees})
}

// CreateEmployee validates and stores a new employee
func (h *Handler) CreateEmployee(c *gin.Context) {
	var payload EmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ungültige Eingabe"})
		return
	}

	if message, ok := payload.Validate(); !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": message})
		return
	}

	record := database.NewEmployeeRecord(payload.toModel())
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Speichern fehlgeschlagen"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": record.ToModel()})
}

// UpdateEmployee validates and updates an existing employee
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ungültige Mitarbeiter-ID"})
		return
	}

	var existing database.Employee
	if err := h.DB.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Mitarbeiter:in nicht gefunden"})
		return
	}

	var payload EmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ungültige Eingabe"})
		return
	}

	if message, ok := payload.Validate(); !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": message})
		return
	}

	record := database.NewEmployeeRecord(payload.toModel())
	record.ID = existing.ID
	record.CreatedAt = existing.CreatedAt
	if err := h.DB.Save(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Aktualisierung fehlgeschlagen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record.ToModel()})
}

// DeleteEmployee removes an employee
func (h *Handler) DeleteEmployee(c *gin.Context) {
	id, ok := parseEmployeeID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ungültige Mitarbeiter-ID"})
		return
	}

	var existing database.Employee
	if err := h.DB.First(&existing, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Mitarbeiter:in nicht gefunden"})
		return
	}

	if err := h.DB.Delete(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Löschen fehlgeschlagen"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": true})
}

func parseEmployeeID(value string) (uint, bool) {
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
