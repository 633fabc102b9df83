package models

import (
	"time"

	"gorm.io/datatypes"
)

// SlotTemplate is the stored weekly schedule of a teacher. AvailableSlots keeps
// the raw JSON text; it is decoded by the template store, never by callers.
type SlotTemplate struct {
	TeacherID uint    `gorm:"primaryKey;autoIncrement:false" json:"teacher_id"`
	Teacher   Teacher `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ChamberNo      string         `gorm:"size:50" json:"chamber_no"`
	Bio            string         `gorm:"type:text" json:"bio"`
	AvailableSlots datatypes.JSON `gorm:"type:text" json:"available_slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SlotTemplate) TableName() string {
	return "teacher_slots"
}
