package dto

import (
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/domain/directory"
)

// TeacherDTO is a directory entry. AvailableSlots stays JSON text, the shape
// booking pages already decode.
type TeacherDTO struct {
	ID             uint   `json:"id"`
	FName          string `json:"fname"`
	LName          string `json:"lname"`
	Subject        string `json:"subject"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ChamberNo      string `json:"chamber_no"`
	Bio            string `json:"bio"`
	AvailableSlots string `json:"available_slots"`
}

func NewTeacherDTO(e directory.Entry) TeacherDTO {
	return TeacherDTO{
		ID:             e.Teacher.ID,
		FName:          e.Teacher.FirstName,
		LName:          e.Teacher.LastName,
		Subject:        e.Teacher.Subject,
		Email:          e.Teacher.Email,
		Phone:          e.Teacher.Phone,
		ChamberNo:      e.Template.ChamberNo,
		Bio:            e.Template.Bio,
		AvailableSlots: e.Template.Schedule.JSON(),
	}
}

type TemplateDTO struct {
	TeacherID      uint                `json:"teacher_id"`
	ChamberNo      string              `json:"chamber_no"`
	Bio            string              `json:"bio"`
	AvailableSlots map[string][]string `json:"available_slots"`
}

func NewTemplateDTO(t availability.Template) TemplateDTO {
	slots := make(map[string][]string, len(t.Schedule))
	for day, labels := range t.Schedule {
		slots[string(day)] = labels
	}

	return TemplateDTO{
		TeacherID:      t.TeacherID,
		ChamberNo:      t.ChamberNo,
		Bio:            t.Bio,
		AvailableSlots: slots,
	}
}

type AvailabilityDTO struct {
	TeacherID uint     `json:"teacher_id"`
	Date      string   `json:"date"`
	Weekday   string   `json:"weekday"`
	Slots     []string `json:"slots"`
	Booked    []string `json:"booked"`
}
