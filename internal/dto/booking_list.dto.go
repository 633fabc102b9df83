package dto

import (
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
)

// StudentBookingDTO is one row of a student's booking history.
type StudentBookingDTO struct {
	SNo                uint   `json:"s_no"`
	TeacherID          uint   `json:"teacher_id"`
	TeacherName        string `json:"teacher_name"`
	Subject            string `json:"subject"`
	BookingDate        string `json:"booking_date"`
	TimeSlot           string `json:"time_slot"`
	Purpose            string `json:"purpose"`
	Notes              string `json:"notes,omitempty"`
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func NewStudentBookingDTO(b models.Booking) StudentBookingDTO {
	return StudentBookingDTO{
		SNo:                b.ID,
		TeacherID:          b.TeacherID,
		TeacherName:        b.Teacher.FullName(),
		Subject:            b.Teacher.Subject,
		BookingDate:        timezone.FormatDate(b.Date()),
		TimeSlot:           b.TimeSlot,
		Purpose:            b.Purpose,
		Notes:              b.Notes,
		Status:             b.Status,
		CancellationReason: b.CancellationReason,
	}
}

// TeacherBookingDTO is one row of a teacher's agenda.
type TeacherBookingDTO struct {
	SNo                uint   `json:"s_no"`
	StudentID          uint   `json:"student_id"`
	BookingDate        string `json:"booking_date"`
	TimeSlot           string `json:"time_slot"`
	Purpose            string `json:"purpose"`
	Notes              string `json:"notes,omitempty"`
	Status             string `json:"status"`
	CancellationReason string `json:"cancellation_reason,omitempty"`
}

func NewTeacherBookingDTO(b models.Booking) TeacherBookingDTO {
	return TeacherBookingDTO{
		SNo:                b.ID,
		StudentID:          b.StudentID,
		BookingDate:        timezone.FormatDate(b.Date()),
		TimeSlot:           b.TimeSlot,
		Purpose:            b.Purpose,
		Notes:              b.Notes,
		Status:             b.Status,
		CancellationReason: b.CancellationReason,
	}
}
