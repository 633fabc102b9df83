package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel applies a student cancellation. It returns the status the booking
// had, so the store can guard the write on it.
func Cancel(b *models.Booking, reason string, now time.Time) (Status, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", httperr.ErrBusiness("missing_reason")
	}

	from := Status(b.Status)
	if err := CanCancel(from); err != nil {
		return "", err
	}

	b.Status = string(StatusCancelled)
	b.CancellationReason = reason
	b.CancelledAt = &now
	return from, nil
}

func Confirm(b *models.Booking, notes string) (Status, error) {
	from := Status(b.Status)
	if err := CanConfirm(from); err != nil {
		return "", err
	}

	b.Status = string(StatusConfirmed)
	setNotes(b, notes)
	return from, nil
}

func Reject(b *models.Booking, notes string) (Status, error) {
	from := Status(b.Status)
	if err := CanReject(from); err != nil {
		return "", err
	}

	b.Status = string(StatusRejected)
	setNotes(b, notes)
	return from, nil
}

func Complete(b *models.Booking, notes string) (Status, error) {
	from := Status(b.Status)
	if err := CanComplete(from); err != nil {
		return "", err
	}

	b.Status = string(StatusCompleted)
	setNotes(b, notes)
	return from, nil
}

// empty notes keep whatever the teacher wrote before
func setNotes(b *models.Booking, notes string) {
	if notes = strings.TrimSpace(notes); notes != "" {
		b.Notes = notes
	}
}
