package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func activeStatuses() []string {
	out := make([]string, 0, len(domain.ActiveStatuses))
	for _, s := range domain.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

// --------------------------------------------------
// Teacher
// --------------------------------------------------

func (r *BookingGormRepository) GetTeacher(
	ctx context.Context,
	teacherID uint,
) (*models.Teacher, error) {

	var teacher models.Teacher
	err := r.db.WithContext(ctx).First(&teacher, teacherID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get teacher: %w", err)
	}
	return &teacher, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where(
				"teacher_id = ? AND booking_date = ? AND time_slot = ? AND status IN ?",
				b.TeacherID, b.BookingDate, b.TimeSlot, activeStatuses(),
			).
			Count(&count).Error; err != nil {
			return fmt.Errorf("count active bookings: %w", err)
		}

		if count > 0 {
			return httperr.ErrConflict("slot_already_booked")
		}

		// idx_bookings_active_slot catches the insert that lost a race
		// against a concurrent request.
		if err := tx.Omit(clause.Associations).Create(b).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrConflict("slot_already_booked")
			}
			return fmt.Errorf("create booking: %w", err)
		}

		return nil
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("s_no = ?", bookingID).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) TransitionBooking(
	ctx context.Context,
	b *models.Booking,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("s_no = ? AND status = ?", b.ID, string(from)).
		Updates(map[string]any{
			"status":              b.Status,
			"notes":               b.Notes,
			"cancellation_reason": b.CancellationReason,
			"cancelled_at":        b.CancelledAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update booking status: %w", res.Error)
	}

	// someone else moved the booking since it was read
	if res.RowsAffected == 0 {
		return httperr.ErrConflict("invalid_state")
	}

	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForStudent(
	ctx context.Context,
	studentID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("booking_date DESC").
		Order("s_no DESC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForTeacher(
	ctx context.Context,
	teacherID uint,
	date *time.Time,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID)

	if date != nil {
		q = q.Where("booking_date = ?", datatypes.Date(*date))
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date ASC").
		Order("s_no ASC").
		Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("list bookings by teacher: %w", err)
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookedSlots(
	ctx context.Context,
	teacherID uint,
	date time.Time,
) ([]string, error) {

	var slots []string
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"teacher_id = ? AND booking_date = ? AND status IN ?",
			teacherID, datatypes.Date(date), activeStatuses(),
		).
		Order("s_no ASC").
		Pluck("time_slot", &slots).Error; err != nil {
		return nil, fmt.Errorf("list booked slots: %w", err)
	}

	return slots, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
