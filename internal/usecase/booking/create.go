package booking

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudentID uint
	TeacherID uint

	Date     string
	TimeSlot string
	Purpose  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	templates availability.TemplateStore
	audit     *audit.Dispatcher
	clock     timezone.Clock
	logger    *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	templates availability.TemplateStore,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:      repo,
		templates: templates,
		audit:     audit,
		clock:     clock,
		logger:    logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Date strictly after today
	// --------------------------------------------------
	date, err := timezone.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	today := timezone.DateOf(uc.clock())
	if !date.After(today) {
		return nil, httperr.ErrBusiness("date_not_in_future")
	}

	// --------------------------------------------------
	// 2. Required fields
	// --------------------------------------------------
	// slot labels are opaque; only a blank one is rejected
	slot := in.TimeSlot
	purpose := strings.TrimSpace(in.Purpose)
	if strings.TrimSpace(slot) == "" || purpose == "" {
		return nil, httperr.ErrBusiness("missing_required_field")
	}

	// --------------------------------------------------
	// 3. Teacher
	// --------------------------------------------------
	teacher, err := uc.repo.GetTeacher(ctx, in.TeacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, httperr.ErrNotFound("teacher_not_found")
	}

	// --------------------------------------------------
	// 4. Slot offered by the template
	// --------------------------------------------------
	tpl, err := uc.templates.Get(ctx, teacher.ID)
	if err != nil {
		return nil, err
	}
	if !tpl.Schedule.Offers(date, slot) {
		return nil, httperr.ErrBusiness("slot_not_offered")
	}

	// --------------------------------------------------
	// 5. Insert (conflict checked by the store)
	// --------------------------------------------------
	b := &models.Booking{
		StudentID:   in.StudentID,
		TeacherID:   teacher.ID,
		BookingDate: datatypes.Date(date),
		TimeSlot:    slot,
		Purpose:     purpose,
		Status:      string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}
	b.Teacher = *teacher

	uc.logger.Info("Booking created",
		zap.Uint("booking_id", b.ID),
		zap.Uint("teacher_id", b.TeacherID),
		zap.Uint("student_id", b.StudentID),
		zap.String("booking_date", timezone.FormatDate(date)),
		zap.String("time_slot", slot))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.StudentID,
		ActorRole: models.RoleStudent,
		Action:    audit.ActionBookingCreated,
		Entity:    audit.EntityBooking,
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"teacher_id":   b.TeacherID,
			"booking_date": timezone.FormatDate(date),
			"time_slot":    slot,
		},
	})

	return b, nil
}
