package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-booking/internal/httpresp"
	"github.com/BruksfildServices01/campus-booking/internal/middleware"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// MeHandler echoes the verified identity; teachers also get their profile.
type MeHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewMeHandler(db *gorm.DB, logger *zap.Logger) *MeHandler {
	return &MeHandler{db: db, logger: logger}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := currentUserID(c)
	role := c.GetString(middleware.ContextUserRole)

	out := gin.H{
		"user": gin.H{
			"id":   userID,
			"role": role,
		},
	}

	if role == models.RoleTeacher {
		var teacher models.Teacher
		err := h.db.WithContext(c.Request.Context()).First(&teacher, userID).Error
		switch {
		case err == nil:
			out["teacher"] = gin.H{
				"id":      teacher.ID,
				"fname":   teacher.FirstName,
				"lname":   teacher.LastName,
				"subject": teacher.Subject,
				"email":   teacher.Email,
				"phone":   teacher.Phone,
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			out["teacher"] = nil
		default:
			writeError(c, h.logger, err)
			return
		}
	}

	httpresp.With(c, http.StatusOK, "", out)
}
