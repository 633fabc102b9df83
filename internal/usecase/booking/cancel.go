package booking

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	clock  timezone.Clock
	logger *zap.Logger
}

func NewCancelBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	logger *zap.Logger,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  audit,
		clock:  clock,
		logger: logger,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	studentID uint,
	bookingID uint,
	reason string,
) (*models.Booking, error) {

	if strings.TrimSpace(reason) == "" {
		return nil, httperr.ErrBusiness("missing_reason")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, httperr.ErrNotFound("booking_not_found")
	}

	// same answer whoever the owner is
	if b.StudentID != studentID {
		return nil, httperr.ErrForbidden("forbidden")
	}

	from, err := domain.Cancel(b, reason, uc.clock().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.repo.TransitionBooking(ctx, b, from); err != nil {
		return nil, err
	}

	uc.logger.Info("Booking cancelled",
		zap.Uint("booking_id", b.ID),
		zap.Uint("student_id", studentID))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &studentID,
		ActorRole: models.RoleStudent,
		Action:    audit.ActionBookingCancelled,
		Entity:    audit.EntityBooking,
		EntityID:  &b.ID,
		Metadata: map[string]any{
			"reason": b.CancellationReason,
		},
	})

	return b, nil
}
