package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/campus-booking/internal/models"
)

type Repository interface {
	// -------- Teacher --------
	GetTeacher(
		ctx context.Context,
		teacherID uint,
	) (*models.Teacher, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking inserts b unless an active booking already holds the
	// same teacher, date and slot, in which case it returns a
	// slot_already_booked conflict.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	// TransitionBooking persists b only if its stored status is still from.
	TransitionBooking(
		ctx context.Context,
		b *models.Booking,
		from Status,
	) error

	// -------- Listing --------
	ListBookingsForStudent(
		ctx context.Context,
		studentID uint,
	) ([]models.Booking, error)

	ListBookingsForTeacher(
		ctx context.Context,
		teacherID uint,
		date *time.Time,
	) ([]models.Booking, error)

	ListBookedSlots(
		ctx context.Context,
		teacherID uint,
		date time.Time,
	) ([]string, error)
}
