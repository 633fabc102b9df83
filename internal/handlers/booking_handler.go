package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/httpresp"
	ucbooking "github.com/BruksfildServices01/campus-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucbooking.CreateBooking
	cancel       *ucbooking.CancelBooking
	list         *ucbooking.ListBookingsForStudent
	availability *ucbooking.GetAvailability
	logger       *zap.Logger
}

func NewBookingHandler(
	create *ucbooking.CreateBooking,
	cancel *ucbooking.CancelBooking,
	list *ucbooking.ListBookingsForStudent,
	availability *ucbooking.GetAvailability,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		cancel:       cancel,
		list:         list,
		availability: availability,
		logger:       logger,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Fields are validated by the use case so errors come back in a fixed order.
type CreateBookingRequest struct {
	TeacherID   uint   `json:"teacher_id" form:"teacher_id"`
	BookingDate string `json:"booking_date" form:"booking_date"`
	TimeSlot    string `json:"time_slot" form:"time_slot"`
	Purpose     string `json:"purpose" form:"purpose"`
}

type CancelBookingRequest struct {
	BookingID uint   `json:"booking_id" form:"booking_id"`
	Reason    string `json:"reason" form:"reason"`
}

// ======================================================
// STUDENT
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucbooking.CreateBookingInput{
		StudentID: currentUserID(c),
		TeacherID: req.TeacherID,
		Date:      req.BookingDate,
		TimeSlot:  req.TimeSlot,
		Purpose:   req.Purpose,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusCreated, "Booking request submitted successfully.", gin.H{
		"booking_id": b.ID,
		"status":     b.Status,
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	var req CancelBookingRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, "invalid_request")
		return
	}

	if _, err := h.cancel.Execute(
		c.Request.Context(),
		currentUserID(c),
		req.BookingID,
		req.Reason,
	); err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.Message(c, http.StatusOK, "Booking cancelled successfully.")
}

func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), currentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "", gin.H{"bookings": bookings})
}

// Availability answers GET /teachers/:id/availability?date=YYYY-MM-DD.
func (h *BookingHandler) Availability(c *gin.Context) {
	teacherID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, h.logger, httperr.ErrNotFound("teacher_not_found"))
		return
	}

	date, err := parseDateParam(c.Query("date"))
	if err != nil || date == nil {
		badRequest(c, "invalid_date")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), uint(teacherID), *date)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	httpresp.With(c, http.StatusOK, "", gin.H{
		"teacher_id": out.TeacherID,
		"date":       out.Date,
		"weekday":    out.Weekday,
		"slots":      out.Slots,
		"booked":     out.Booked,
	})
}
