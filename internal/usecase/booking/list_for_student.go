package booking

import (
	"context"

	domain "github.com/BruksfildServices01/campus-booking/internal/domain/booking"
	"github.com/BruksfildServices01/campus-booking/internal/dto"
)

type ListBookingsForStudent struct {
	repo domain.Repository
}

func NewListBookingsForStudent(repo domain.Repository) *ListBookingsForStudent {
	return &ListBookingsForStudent{repo: repo}
}

// Execute lists newest booking dates first.
func (uc *ListBookingsForStudent) Execute(
	ctx context.Context,
	studentID uint,
) ([]dto.StudentBookingDTO, error) {

	bookings, err := uc.repo.ListBookingsForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StudentBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.NewStudentBookingDTO(b))
	}

	return out, nil
}
