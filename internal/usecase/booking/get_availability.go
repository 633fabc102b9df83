package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/dto"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

type GetAvailability struct {
	repo      domain.Repository
	templates availability.TemplateStore
}

func NewGetAvailability(
	repo domain.Repository,
	templates availability.TemplateStore,
) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		templates: templates,
	}
}

// Execute resolves the labels a teacher offers on date, in template order,
// next to the labels live bookings already hold.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	teacherID uint,
	date time.Time,
) (dto.AvailabilityDTO, error) {

	teacher, err := uc.repo.GetTeacher(ctx, teacherID)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	if teacher == nil {
		return dto.AvailabilityDTO{}, httperr.ErrNotFound("teacher_not_found")
	}

	tpl, err := uc.templates.Get(ctx, teacher.ID)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}

	booked, err := uc.repo.ListBookedSlots(ctx, teacher.ID, date)
	if err != nil {
		return dto.AvailabilityDTO{}, err
	}
	if booked == nil {
		booked = []string{}
	}

	return dto.AvailabilityDTO{
		TeacherID: teacher.ID,
		Date:      timezone.FormatDate(date),
		Weekday:   string(availability.WeekdayOf(date)),
		Slots:     tpl.SlotsFor(date),
		Booked:    booked,
	}, nil
}
