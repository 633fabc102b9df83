package template

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/httperr"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// TeacherLookup is the part of the booking store templates need.
type TeacherLookup interface {
	GetTeacher(ctx context.Context, teacherID uint) (*models.Teacher, error)
}

// ======================================================
// GET
// ======================================================

type GetTemplate struct {
	teachers  TeacherLookup
	templates availability.TemplateStore
}

func NewGetTemplate(
	teachers TeacherLookup,
	templates availability.TemplateStore,
) *GetTemplate {
	return &GetTemplate{teachers: teachers, templates: templates}
}

func (uc *GetTemplate) Execute(
	ctx context.Context,
	teacherID uint,
) (availability.Template, error) {

	if err := ensureTeacher(ctx, uc.teachers, teacherID); err != nil {
		return availability.Template{}, err
	}

	return uc.templates.Get(ctx, teacherID)
}

// ======================================================
// SAVE
// ======================================================

type SaveTemplateInput struct {
	TeacherID uint
	ChamberNo string
	Bio       string
	Slots     map[string][]string
}

type SaveTemplate struct {
	teachers  TeacherLookup
	templates availability.TemplateStore
	audit     *audit.Dispatcher
	logger    *zap.Logger
}

func NewSaveTemplate(
	teachers TeacherLookup,
	templates availability.TemplateStore,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *SaveTemplate {
	return &SaveTemplate{
		teachers:  teachers,
		templates: templates,
		audit:     audit,
		logger:    logger,
	}
}

// Execute replaces the teacher's whole template.
func (uc *SaveTemplate) Execute(
	ctx context.Context,
	in SaveTemplateInput,
) (availability.Template, error) {

	schedule, err := availability.NormalizeSchedule(in.Slots)
	if err != nil {
		return availability.Template{}, err
	}

	if err := ensureTeacher(ctx, uc.teachers, in.TeacherID); err != nil {
		return availability.Template{}, err
	}

	t := availability.Template{
		TeacherID: in.TeacherID,
		ChamberNo: strings.TrimSpace(in.ChamberNo),
		Bio:       strings.TrimSpace(in.Bio),
		Schedule:  schedule,
	}
	if t.ChamberNo == "" {
		t.ChamberNo = availability.DefaultChamber
	}

	if err := uc.templates.Save(ctx, t); err != nil {
		return availability.Template{}, err
	}

	uc.logger.Info("Slot template saved",
		zap.Uint("teacher_id", in.TeacherID),
		zap.Int("weekdays", len(schedule)))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.TeacherID,
		ActorRole: models.RoleTeacher,
		Action:    audit.ActionTemplateSaved,
		Entity:    audit.EntityTemplate,
		EntityID:  &in.TeacherID,
	})

	return t, nil
}

func ensureTeacher(ctx context.Context, teachers TeacherLookup, teacherID uint) error {
	teacher, err := teachers.GetTeacher(ctx, teacherID)
	if err != nil {
		return err
	}
	if teacher == nil {
		return httperr.ErrNotFound("teacher_not_found")
	}
	return nil
}
