package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/middleware"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

var messages = map[string]string{
	"invalid_request":        "Invalid request data.",
	"invalid_date":           "Please provide a valid date (YYYY-MM-DD).",
	"date_not_in_future":     "Booking date must be in the future.",
	"missing_required_field": "Please fill in all required fields.",
	"teacher_not_found":      "Teacher not found.",
	"slot_not_offered":       "This slot is not offered on the selected date.",
	"slot_already_booked":    "This slot is already booked. Please pick another one.",
	"missing_reason":         "Please provide a reason for cancellation.",
	"booking_not_found":      "Booking not found.",
	"forbidden":              "You are not allowed to modify this booking.",
	"invalid_state":          "This booking can no longer be changed.",
	"invalid_action":         "Unknown booking action.",
	"invalid_weekday":        "Schedule keys must be weekday names.",
	"empty_slot_label":       "Slot labels cannot be empty.",
}

func messageFor(code string) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return "Request could not be completed."
}

// writeError renders business errors with their own status and hides
// everything else behind a logged 500.
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Write(c, httperr.StatusFor(be.Kind), be.Code, messageFor(be.Code))
		return
	}

	logger.Error("Request failed",
		zap.String("request_id", c.GetString(middleware.ContextRequestID)),
		zap.String("path", c.FullPath()),
		zap.Error(err))
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}

func badRequest(c *gin.Context, code string) {
	httperr.BadRequest(c, code, messageFor(code))
}

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// parseDateParam reads an optional YYYY-MM-DD value; nil means absent.
func parseDateParam(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	d, err := timezone.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
