package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	"github.com/BruksfildServices01/campus-booking/internal/config"
	"github.com/BruksfildServices01/campus-booking/internal/db"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/infra/repository"
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

const (
	secret    = "test-secret"
	studentID = 501
)

func init() {
	gin.SetMode(gin.TestMode)
}

type server struct {
	t          *testing.T
	router     *gin.Engine
	db         *gorm.DB
	dispatcher *audit.Dispatcher
	teacher    models.Teacher

	studentToken string
	otherToken   string
	teacherToken string
}

func newServer(t *testing.T) *server {
	t.Helper()

	conn, err := db.Open(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	teacher := models.Teacher{FirstName: "Asha", LastName: "Rao", Subject: "Physics", Email: "asha@campus.test"}
	require.NoError(t, conn.Create(&teacher).Error)
	require.NoError(t, conn.Create(&models.Teacher{FirstName: "Vikram", LastName: "Sen", Subject: "Maths"}).Error)

	require.NoError(t, repository.NewTemplateGormRepository(conn, zap.NewNop()).Save(context.Background(), availability.Template{
		TeacherID: teacher.ID,
		ChamberNo: "B-204",
		Schedule:  availability.Schedule{availability.Monday: {"09:00-09:30", "09:30-10:00"}},
	}))

	dispatcher := audit.NewDispatcher(audit.New(conn), zap.NewNop())
	t.Cleanup(dispatcher.Close)

	cfg := &config.Config{JWTSecret: secret, Timezone: timezone.DefaultTimezone}

	// Sunday 2026-10-18 in Kolkata; Monday 2026-10-19 is bookable
	now := time.Date(2026, 10, 18, 10, 0, 0, 0, timezone.Location(cfg.Timezone))

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:     conn,
		Config: cfg,
		Logger: zap.NewNop(),
		Audit:  dispatcher,
		Clock:  timezone.FixedClock(now),
	})

	s := &server{t: t, router: r, db: conn, dispatcher: dispatcher, teacher: teacher}
	s.studentToken = s.token(studentID, models.RoleStudent)
	s.otherToken = s.token(studentID+1, models.RoleStudent)
	s.teacherToken = s.token(teacher.ID, models.RoleTeacher)
	return s
}

func (s *server) token(sub uint, role string) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
	}).SignedString([]byte(secret))
	require.NoError(s.t, err)
	return tok
}

func (s *server) do(method, path, token string, body any) (int, map[string]any) {
	s.t.Helper()

	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case url.Values:
		req = httptest.NewRequest(method, path, strings.NewReader(b.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (s *server) book(token, date, slot, purpose string) (int, map[string]any) {
	return s.do(http.MethodPost, "/api/bookings", token, gin.H{
		"teacher_id":   s.teacher.ID,
		"booking_date": date,
		"time_slot":    slot,
		"purpose":      purpose,
	})
}

func bookingID(t *testing.T, body map[string]any) uint {
	t.Helper()

	id, ok := body["booking_id"].(float64)
	require.True(t, ok, "booking_id missing: %v", body)
	return uint(id)
}

// --------------------------------------------------
// Infrastructure
// --------------------------------------------------

func TestHealth(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthAndRoles(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, false, body["success"])

	code, _ = s.do(http.MethodGet, "/api/bookings", s.teacherToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/teacher/slots", s.studentToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func TestSearch(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/teachers/search", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])

	teachers := body["teachers"].([]any)
	require.Len(t, teachers, 2)

	asha := teachers[0].(map[string]any)
	assert.Equal(t, "Asha", asha["fname"])
	assert.Equal(t, "B-204", asha["chamber_no"])
	assert.JSONEq(t, `{"monday":["09:00-09:30","09:30-10:00"]}`, asha["available_slots"].(string))

	vikram := teachers[1].(map[string]any)
	assert.Equal(t, "Not set", vikram["chamber_no"])
	assert.Equal(t, "{}", vikram["available_slots"])

	_, body = s.do(http.MethodGet, "/api/teachers/search?query=MATH", s.studentToken, nil)
	assert.Len(t, body["teachers"], 1)

	// legacy parameter name
	_, body = s.do(http.MethodGet, "/api/teachers/search?search=rao", s.studentToken, nil)
	assert.Len(t, body["teachers"], 1)
}

// --------------------------------------------------
// Student bookings
// --------------------------------------------------

func TestCreateBooking_Validation(t *testing.T) {
	s := newServer(t)

	cases := []struct {
		date, slot, purpose string
		status              int
		code                string
	}{
		{"2026-10-18", "09:00-09:30", "x", http.StatusBadRequest, "date_not_in_future"},
		{"18-10-2026", "09:00-09:30", "x", http.StatusBadRequest, "invalid_date"},
		{"2026-10-19", "09:00-09:30", "", http.StatusBadRequest, "missing_required_field"},
		{"2026-10-20", "09:00-09:30", "x", http.StatusBadRequest, "slot_not_offered"},
	}
	for _, tc := range cases {
		code, body := s.book(s.studentToken, tc.date, tc.slot, tc.purpose)
		assert.Equal(t, tc.status, code, tc.code)
		assert.Equal(t, tc.code, body["error_code"])
		assert.NotEmpty(t, body["message"])
	}

	code, body := s.do(http.MethodPost, "/api/bookings", s.studentToken, gin.H{
		"teacher_id":   9999,
		"booking_date": "2026-10-19",
		"time_slot":    "09:00-09:30",
		"purpose":      "x",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "teacher_not_found", body["error_code"])

	code, body = s.do(http.MethodPost, "/api/bookings", s.studentToken, gin.H{"teacher_id": "abc"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_request", body["error_code"])
}

func TestBookingLifecycle(t *testing.T) {
	s := newServer(t)

	code, body := s.book(s.studentToken, "2026-10-19", "09:00-09:30", "Discuss grades")
	require.Equal(t, http.StatusCreated, code, body)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "pending", body["status"])
	id := bookingID(t, body)

	code, body = s.book(s.otherToken, "2026-10-19", "09:00-09:30", "Lab report")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "slot_already_booked", body["error_code"])

	code, body = s.do(http.MethodGet, "/api/teachers/1/availability?date=2026-10-19", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "monday", body["weekday"])
	assert.Equal(t, []any{"09:00-09:30", "09:30-10:00"}, body["slots"])
	assert.Equal(t, []any{"09:00-09:30"}, body["booked"])

	code, body = s.do(http.MethodGet, "/api/bookings", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	list := body["bookings"].([]any)
	require.Len(t, list, 1)
	row := list[0].(map[string]any)
	assert.Equal(t, float64(id), row["s_no"])
	assert.Equal(t, "Asha Rao", row["teacher_name"])
	assert.Equal(t, "Physics", row["subject"])
	assert.Equal(t, "2026-10-19", row["booking_date"])
	assert.Equal(t, "pending", row["status"])

	// another student cannot cancel it
	code, body = s.do(http.MethodPost, "/api/bookings/cancel", s.otherToken, gin.H{"booking_id": id, "reason": "mine now"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", body["error_code"])

	code, body = s.do(http.MethodPost, "/api/bookings/cancel", s.studentToken, gin.H{"booking_id": id, "reason": " "})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "missing_reason", body["error_code"])

	code, body = s.do(http.MethodPost, "/api/bookings/cancel", s.studentToken, url.Values{
		"booking_id": {"9999"},
		"reason":     {"Schedule conflict"},
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "booking_not_found", body["error_code"])

	code, body = s.do(http.MethodPost, "/api/bookings/cancel", s.studentToken, gin.H{"booking_id": id, "reason": "Schedule conflict"})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, body["success"])

	code, body = s.do(http.MethodPost, "/api/bookings/cancel", s.studentToken, gin.H{"booking_id": id, "reason": "again"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid_state", body["error_code"])

	_, body = s.do(http.MethodGet, "/api/bookings", s.studentToken, nil)
	row = body["bookings"].([]any)[0].(map[string]any)
	assert.Equal(t, "cancelled", row["status"])
	assert.Equal(t, "Schedule conflict", row["cancellation_reason"])

	// the slot is free again
	code, _ = s.book(s.otherToken, "2026-10-19", "09:00-09:30", "Lab report")
	assert.Equal(t, http.StatusCreated, code)
}

func TestCreateBooking_FormEncoded(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodPost, "/api/bookings", s.studentToken, url.Values{
		"teacher_id":   {"1"},
		"booking_date": {"2026-10-19"},
		"time_slot":    {"09:30-10:00"},
		"purpose":      {"Discuss grades"},
	})
	require.Equal(t, http.StatusCreated, code, body)
	assert.NotZero(t, bookingID(t, body))
}

func TestAvailability_BadInput(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/teachers/1/availability", s.studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_date", body["error_code"])

	code, body = s.do(http.MethodGet, "/api/teachers/abc/availability?date=2026-10-19", s.studentToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "teacher_not_found", body["error_code"])
}

// --------------------------------------------------
// Teacher side
// --------------------------------------------------

func TestTeacherSlots(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/teacher/slots", s.teacherToken, nil)
	require.Equal(t, http.StatusOK, code)
	tpl := body["template"].(map[string]any)
	assert.Equal(t, "B-204", tpl["chamber_no"])

	code, body = s.do(http.MethodPut, "/api/teacher/slots", s.teacherToken, gin.H{
		"chamber_no":      "C-101",
		"bio":             "Optics and waves",
		"available_slots": gin.H{"Tuesday": []string{"11:00-11:30"}},
	})
	require.Equal(t, http.StatusOK, code, body)

	// Tuesday is now bookable, Monday is gone
	code, _ = s.book(s.studentToken, "2026-10-20", "11:00-11:30", "Discuss grades")
	assert.Equal(t, http.StatusCreated, code)
	code, body = s.book(s.studentToken, "2026-10-19", "09:00-09:30", "Discuss grades")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "slot_not_offered", body["error_code"])

	code, body = s.do(http.MethodPut, "/api/teacher/slots", s.teacherToken, gin.H{
		"available_slots": gin.H{"caturday": []string{"11:00"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_weekday", body["error_code"])
}

func TestTeacherWorkflow(t *testing.T) {
	s := newServer(t)

	_, body := s.book(s.studentToken, "2026-10-19", "09:00-09:30", "Discuss grades")
	id := bookingID(t, body)
	base := "/api/teacher/bookings/" + jsonNumber(id)

	code, body := s.do(http.MethodGet, "/api/teacher/bookings?date=2026-10-19", s.teacherToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["bookings"], 1)

	code, body = s.do(http.MethodGet, "/api/teacher/bookings?date=nope", s.teacherToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_date", body["error_code"])

	code, body = s.do(http.MethodPatch, base+"/complete", s.teacherToken, nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "invalid_state", body["error_code"])

	code, body = s.do(http.MethodPatch, base+"/confirm", s.teacherToken, gin.H{"notes": "Bring the draft"})
	require.Equal(t, http.StatusOK, code, body)
	booking := body["booking"].(map[string]any)
	assert.Equal(t, "confirmed", booking["status"])
	assert.Equal(t, "Bring the draft", booking["notes"])

	code, body = s.do(http.MethodPatch, base+"/complete", s.teacherToken, nil)
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, "completed", body["booking"].(map[string]any)["status"])

	other := s.token(s.teacher.ID+1, models.RoleTeacher)
	code, body = s.do(http.MethodPatch, base+"/reject", other, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", body["error_code"])

	_, body = s.do(http.MethodGet, "/api/bookings", s.studentToken, nil)
	row := body["bookings"].([]any)[0].(map[string]any)
	assert.Equal(t, "completed", row["status"])
	assert.Equal(t, "Bring the draft", row["notes"])
}

func TestAuditTrail(t *testing.T) {
	s := newServer(t)

	_, body := s.book(s.studentToken, "2026-10-19", "09:00-09:30", "Discuss grades")
	id := bookingID(t, body)
	code, _ := s.do(http.MethodPost, "/api/bookings/cancel", s.studentToken, gin.H{"booking_id": id, "reason": "Schedule conflict"})
	require.Equal(t, http.StatusOK, code)

	// flush queued audit events
	s.dispatcher.Close()

	code, body = s.do(http.MethodGet, "/api/me/audit-logs", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["total"])

	logs := body["logs"].([]any)
	actions := []any{logs[0].(map[string]any)["action"], logs[1].(map[string]any)["action"]}
	assert.ElementsMatch(t, []any{audit.ActionBookingCreated, audit.ActionBookingCancelled}, actions)

	_, body = s.do(http.MethodGet, "/api/me/audit-logs?action=booking_cancelled", s.studentToken, nil)
	assert.Equal(t, float64(1), body["total"])

	// the other student sees nothing
	_, body = s.do(http.MethodGet, "/api/me/audit-logs", s.otherToken, nil)
	assert.Equal(t, float64(0), body["total"])
}

func TestAuditTrail_DayFiltersUseServiceTimezone(t *testing.T) {
	s := newServer(t)

	actor := uint(studentID)
	rows := []models.AuditLog{
		// 2026-10-19 01:30 in Kolkata
		{ActorID: &actor, ActorRole: models.RoleStudent, Action: audit.ActionBookingCreated, CreatedAt: time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)},
		// 2026-10-20 01:30 in Kolkata
		{ActorID: &actor, ActorRole: models.RoleStudent, Action: audit.ActionBookingCancelled, CreatedAt: time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, s.db.Create(&rows).Error)

	code, body := s.do(http.MethodGet, "/api/me/audit-logs?from=2026-10-19&to=2026-10-19", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, float64(1), body["total"])
	assert.Equal(t, audit.ActionBookingCreated, body["logs"].([]any)[0].(map[string]any)["action"])

	_, body = s.do(http.MethodGet, "/api/me/audit-logs?from=2026-10-20", s.studentToken, nil)
	require.Equal(t, float64(1), body["total"])
	assert.Equal(t, audit.ActionBookingCancelled, body["logs"].([]any)[0].(map[string]any)["action"])
}

func jsonNumber(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}

func TestMe(t *testing.T) {
	s := newServer(t)

	code, body := s.do(http.MethodGet, "/api/me", s.studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "student", body["user"].(map[string]any)["role"])
	assert.NotContains(t, body, "teacher")

	code, body = s.do(http.MethodGet, "/api/me", s.teacherToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Asha", body["teacher"].(map[string]any)["fname"])
}
