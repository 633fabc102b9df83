package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-booking/internal/httpresp"
	"github.com/BruksfildServices01/campus-booking/internal/middleware"
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

// AuditLogsHandler lists the caller's own audit trail. Day filters are
// calendar days in loc.
type AuditLogsHandler struct {
	db     *gorm.DB
	loc    *time.Location
	logger *zap.Logger
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location, logger *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc, logger: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	role := c.GetString(middleware.ContextUserRole)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always scoped to the caller
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("actor_id = ? AND actor_role = ?", userID, role)

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from, err := timezone.ParseDate(c.Query("from")); err == nil {
		start, _ := timezone.DayRange(from, h.loc)
		q = q.Where("created_at >= ?", start)
	}

	if to, err := timezone.ParseDate(c.Query("to")); err == nil {
		_, end := timezone.DayRange(to, h.loc)
		q = q.Where("created_at < ?", end)
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		writeError(c, h.logger, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "", gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
