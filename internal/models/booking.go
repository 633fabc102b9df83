package models

import (
	"time"

	"gorm.io/datatypes"
)

type Booking struct {
	ID uint `gorm:"primaryKey;column:s_no" json:"s_no"`

	StudentID uint `gorm:"not null;index" json:"student_id"`

	TeacherID uint    `gorm:"not null;index" json:"teacher_id"`
	Teacher   Teacher `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"teacher"`

	BookingDate datatypes.Date `gorm:"type:date;not null" json:"booking_date"`
	TimeSlot    string         `gorm:"size:50;not null" json:"time_slot"`
	Purpose     string         `gorm:"type:text;not null" json:"purpose"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Notes              string     `gorm:"type:text" json:"notes"`
	CancellationReason string     `gorm:"type:text" json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b Booking) Date() time.Time {
	return time.Time(b.BookingDate)
}
