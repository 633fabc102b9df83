package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/dto"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/httpresp"
	ucbooking "github.com/BruksfildServices01/campus-booking/internal/usecase/booking"
	uctemplate "github.com/BruksfildServices01/campus-booking/internal/usecase/template"
)

// TeacherHandler serves the teacher's own template and agenda.
type TeacherHandler struct {
	getTemplate  *uctemplate.GetTemplate
	saveTemplate *uctemplate.SaveTemplate
	agenda       *ucbooking.ListBookingsForTeacher
	status       *ucbooking.UpdateBookingStatus
	logger       *zap.Logger
}

func NewTeacherHandler(
	getTemplate *uctemplate.GetTemplate,
	saveTemplate *uctemplate.SaveTemplate,
	agenda *ucbooking.ListBookingsForTeacher,
	status *ucbooking.UpdateBookingStatus,
	logger *zap.Logger,
) *TeacherHandler {
	return &TeacherHandler{
		getTemplate:  getTemplate,
		saveTemplate: saveTemplate,
		agenda:       agenda,
		status:       status,
		logger:       logger,
	}
}

type SaveSlotsRequest struct {
	ChamberNo      string              `json:"chamber_no"`
	Bio            string              `json:"bio"`
	AvailableSlots map[string][]string `json:"available_slots"`
}

type StatusRequest struct {
	Notes string `json:"notes" form:"notes"`
}

// ======================================================
// SLOT TEMPLATE
// ======================================================

func (h *TeacherHandler) GetSlots(c *gin.Context) {
	tpl, err := h.getTemplate.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "", gin.H{"template": dto.NewTemplateDTO(tpl)})
}

func (h *TeacherHandler) SaveSlots(c *gin.Context) {
	var req SaveSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	tpl, err := h.saveTemplate.Execute(c.Request.Context(), uctemplate.SaveTemplateInput{
		TeacherID: currentUserID(c),
		ChamberNo: req.ChamberNo,
		Bio:       req.Bio,
		Slots:     req.AvailableSlots,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "Availability updated.", gin.H{"template": dto.NewTemplateDTO(tpl)})
}

// ======================================================
// AGENDA
// ======================================================

func (h *TeacherHandler) ListBookings(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		badRequest(c, "invalid_date")
		return
	}

	bookings, err := h.agenda.Execute(c.Request.Context(), currentUserID(c), date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

func (h *TeacherHandler) Confirm(c *gin.Context) {
	h.transition(c, ucbooking.ActionConfirm, "Booking confirmed.")
}

func (h *TeacherHandler) Reject(c *gin.Context) {
	h.transition(c, ucbooking.ActionReject, "Booking rejected.")
}

func (h *TeacherHandler) Complete(c *gin.Context) {
	h.transition(c, ucbooking.ActionComplete, "Booking completed.")
}

func (h *TeacherHandler) transition(c *gin.Context, action ucbooking.TeacherAction, message string) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, httperr.ErrNotFound("booking_not_found"))
		return
	}

	// notes are optional, an empty body is fine
	var req StatusRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBind(&req); err != nil {
			badRequest(c, "invalid_request")
			return
		}
	}

	b, err := h.status.Execute(
		c.Request.Context(),
		currentUserID(c),
		uint(bookingID),
		action,
		req.Notes,
	)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, message, gin.H{
		"booking": dto.NewTeacherBookingDTO(*b),
	})
}
