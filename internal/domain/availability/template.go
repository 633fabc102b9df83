package availability

import (
	"context"
	"time"
)

const DefaultChamber = "Not set"

type Template struct {
	TeacherID uint
	ChamberNo string
	Bio       string
	Schedule  Schedule
}

// EmptyTemplate is what a teacher without a stored template exposes.
func EmptyTemplate(teacherID uint) Template {
	return Template{
		TeacherID: teacherID,
		ChamberNo: DefaultChamber,
		Schedule:  Schedule{},
	}
}

func (t Template) SlotsFor(date time.Time) []string {
	return t.Schedule.SlotsFor(date)
}

// TemplateStore returns an error only when storage itself fails; a missing or
// undecodable template is reported as EmptyTemplate or an empty schedule.
type TemplateStore interface {
	Get(ctx context.Context, teacherID uint) (Template, error)
	Save(ctx context.Context, t Template) error
}
