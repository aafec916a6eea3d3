package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mlutter/dienstplan-api/pkg/auth"
	"github.com/mlutter/dienstplan-api/pkg/database"
	"github.com/mlutter/dienstplan-api/pkg/models"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&database.Employee{}, &database.MasterUser{}, &database.ScheduleRun{}))

	h := &Handler{DB: db}
	r := gin.New()
	r.POST("/admin/login", h.Login)

	api := r.Group("/api")
	api.GET("/employees", h.ListEmployees)
	api.POST("/employees", h.AuthMiddleware(), h.CreateEmployee)
	api.PATCH("/employees/:id", h.AuthMiddleware(), h.UpdateEmployee)
	api.DELETE("/employees/:id", h.AuthMiddleware(), h.DeleteEmployee)
	api.GET("/schedule", h.GetSchedule)
	api.GET("/schedule/runs", h.AuthMiddleware(), h.ListRuns)

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.CreateToken("admin")
	require.NoError(t, err)
	return token
}

func validPayload() map[string]any {
	return map[string]any{
		"name":                "Anna Schmidt",
		"monthlyHours":        120,
		"area":                "KASSE",
		"employmentType":      "ANGESTELLTER",
		"availableWeekdays":   []int{5, 1, 3},
		"weekendAvailability": true,
		"fixedCashierSlots":   []map[string]any{{"weekday": 1, "shiftId": "W-2"}},
	}
}

func TestCreateEmployeeRequiresAuth(t *testing.T) {
	r, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/employees", validPayload(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/employees", validPayload(), "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateAndListEmployee(t *testing.T) {
	r, _ := setupRouter(t)
	token := adminToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/employees", validPayload(), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data models.Employee `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Anna Schmidt", created.Data.Name)
	assert.Equal(t, []int{1, 3, 5}, created.Data.AvailableWeekdays)
	assert.Equal(t, []models.FixedCashierSlot{{Weekday: 1, ShiftID: "W-2"}}, created.Data.FixedCashierSlots)

	w = doJSON(t, r, http.MethodGet, "/api/employees", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Data []models.Employee `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, created.Data.ID, listed.Data[0].ID)
}

func TestCreateEmployeeValidation(t *testing.T) {
	r, _ := setupRouter(t)
	token := adminToken(t)

	cases := []struct {
		name    string
		mutate  func(map[string]any)
		message string
	}{
		{"short name", func(p map[string]any) { p["name"] = "A" }, "Name muss mindestens 2 Zeichen haben."},
		{"zero hours", func(p map[string]any) { p["monthlyHours"] = 0 }, "Monatsstunden müssen zwischen 1 und 400 liegen."},
		{"too many hours", func(p map[string]any) { p["monthlyHours"] = 500 }, "Monatsstunden müssen zwischen 1 und 400 liegen."},
		{"bad area", func(p map[string]any) { p["area"] = "GARTEN" }, "Unbekannter Bereich: GARTEN"},
		{"bad employment", func(p map[string]any) { p["employmentType"] = "CHEF" }, "Unbekannte Beschäftigungsart: CHEF"},
		{"no weekdays", func(p map[string]any) { p["availableWeekdays"] = []int{} }, "Mindestens ein Wochentag ist erforderlich."},
		{"weekday range", func(p map[string]any) { p["availableWeekdays"] = []int{1, 7} }, "Wochentage müssen zwischen 0 und 6 liegen."},
		{"bad fixed slot", func(p map[string]any) {
			p["fixedCashierSlots"] = []map[string]any{{"weekday": 1, "shiftId": "X-1"}}
		}, "Unbekannte Kassenschicht: X-1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(payload)
			w := doJSON(t, r, http.MethodPost, "/api/employees", payload, token)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var resp struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Message)
		})
	}
}

func TestUpdateAndDeleteEmployee(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t)

	record := database.NewEmployeeRecord(models.Employee{
		Name:              "Berta Klein",
		MonthlyHours:      80,
		Area:              models.AreaBistro,
		EmploymentType:    models.EmploymentAushilfe,
		AvailableWeekdays: []int{2, 4},
	})
	require.NoError(t, db.Create(&record).Error)

	payload := validPayload()
	payload["name"] = "Berta Groß"

	w := doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/employees/%d", record.ID), payload, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated struct {
		Data models.Employee `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Berta Groß", updated.Data.Name)
	assert.Equal(t, models.AreaKasse, updated.Data.Area)

	w = doJSON(t, r, http.MethodPatch, "/api/employees/999", payload, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/api/employees/abc", payload, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", record.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/employees/%d", record.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSchedule(t *testing.T) {
	r, db := setupRouter(t)

	roster := []models.Employee{
		{
			Name:                "Greta Sommer",
			MonthlyHours:        160,
			Area:                models.AreaKasse,
			EmploymentType:      models.EmploymentAngestellter,
			AvailableWeekdays:   []int{0, 1, 2, 3, 4, 5, 6},
			WeekendAvailability: true,
		},
		{
			Name:              "Ole Winter",
			MonthlyHours:      80,
			Area:              models.AreaBistro,
			EmploymentType:    models.EmploymentAushilfe,
			AvailableWeekdays: []int{1, 2, 3, 4, 5},
		},
	}
	for _, employee := range roster {
		record := database.NewEmployeeRecord(employee)
		require.NoError(t, db.Create(&record).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/schedule?month=2024-07", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var schedule models.GeneratedSchedule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &schedule))
	assert.Equal(t, "2024-07", schedule.MonthKey)
	assert.Equal(t, "Juli 2024", schedule.MonthLabel)
	require.Len(t, schedule.Days, 31)
	assert.Positive(t, schedule.Summary.FilledCashierShifts)

	// every request upserts the generation history
	var runs []database.ScheduleRun
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	assert.Equal(t, "2024-07", runs[0].MonthKey)
	assert.Equal(t, 1, runs[0].RequestCount)

	w = doJSON(t, r, http.MethodGet, "/api/schedule?month=2024-07", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Find(&runs).Error)
	require.Len(t, runs, 1)
	assert.Equal(t, 2, runs[0].RequestCount)
}

func TestListRuns(t *testing.T) {
	r, db := setupRouter(t)
	token := adminToken(t)

	require.NoError(t, db.Create(&database.ScheduleRun{
		MonthKey: "2024-07", Date: "2024-06-20", RequestCount: 3, TotalSlots: 178, FilledSlots: 120, WarningCount: 58,
	}).Error)

	w := doJSON(t, r, http.MethodGet, "/api/schedule/runs", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/schedule/runs", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Runs []database.ScheduleRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Runs, 1)
	assert.Equal(t, 3, resp.Runs[0].RequestCount)
}

func TestLogin(t *testing.T) {
	r, db := setupRouter(t)

	hash, err := auth.HashPassword("geheim")
	require.NoError(t, err)
	require.NoError(t, db.Create(&database.MasterUser{Username: "admin", PasswordHash: hash}).Error)

	w := doJSON(t, r, http.MethodPost, "/admin/login", map[string]string{"username": "admin", "password": "falsch"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/admin/login", map[string]string{"username": "admin", "password": "geheim"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	claims, err := auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
}
