package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/dto"
)

type ListBookingsForTeacher struct {
	repo domain.Repository
}

func NewListBookingsForTeacher(repo domain.Repository) *ListBookingsForTeacher {
	return &ListBookingsForTeacher{repo: repo}
}

// Execute lists the teacher's agenda in date order; date narrows it to one day.
func (uc *ListBookingsForTeacher) Execute(
	ctx context.Context,
	teacherID uint,
	date *time.Time,
) ([]dto.TeacherBookingDTO, error) {

	bookings, err := uc.repo.ListBookingsForTeacher(ctx, teacherID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TeacherBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.NewTeacherBookingDTO(b))
	}

	return out, nil
}
