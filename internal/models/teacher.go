package models

import "time"

type Teacher struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:fname;size:100;not null;default:''" json:"fname"`
	LastName  string `gorm:"column:lname;size:100;not null;default:''" json:"lname"`
	Subject   string `gorm:"size:100;not null;default:''" json:"subject"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t Teacher) FullName() string {
	switch {
	case t.FirstName == "":
		return t.LastName
	case t.LastName == "":
		return t.FirstName
	default:
		return t.FirstName + " " + t.LastName
	}
}
