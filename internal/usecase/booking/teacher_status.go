package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// TeacherAction is a step of the teacher-side workflow.
type TeacherAction string

const (
	ActionConfirm  TeacherAction = "confirm"
	ActionReject   TeacherAction = "reject"
	ActionComplete TeacherAction = "complete"
)

type transition struct {
	apply       func(*models.Booking, string) (domain.Status, error)
	auditAction string
}

var transitions = map[TeacherAction]transition{
	ActionConfirm:  {apply: domain.Confirm, auditAction: audit.ActionBookingConfirmed},
	ActionReject:   {apply: domain.Reject, auditAction: audit.ActionBookingRejected},
	ActionComplete: {apply: domain.Complete, auditAction: audit.ActionBookingCompleted},
}

type UpdateBookingStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewUpdateBookingStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *UpdateBookingStatus {
	return &UpdateBookingStatus{
		repo:   repo,
		audit:  audit,
		logger: logger,
	}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	teacherID uint,
	bookingID uint,
	action TeacherAction,
	notes string,
) (*models.Booking, error) {

	tr, ok := transitions[action]
	if !ok {
		return nil, httperr.ErrBusiness("invalid_action")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}
	if b.TeacherID != teacherID {
		return nil, httperr.ErrForbidden("forbidden")
	}

	from, err := tr.apply(b, notes)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionBooking(ctx, b, from); err != nil {
		return nil, err
	}

	uc.logger.Info("Booking status changed",
		zap.Uint("booking_id", b.ID),
		zap.Uint("teacher_id", teacherID),
		zap.String("from", string(from)),
		zap.String("to", b.Status))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &teacherID,
		ActorRole: models.RoleTeacher,
		Action:    tr.auditAction,
		Entity:    audit.EntityBooking,
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"from": string(from),
			"to":   b.Status,
		},
	})

	return b, nil
}
