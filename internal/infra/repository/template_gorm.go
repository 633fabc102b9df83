package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// TemplateGormRepository is the slot template store backed by teacher_slots.
type TemplateGormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTemplateGormRepository(db *gorm.DB, logger *zap.Logger) *TemplateGormRepository {
	return &TemplateGormRepository{db: db, logger: logger}
}

func (r *TemplateGormRepository) Get(
	ctx context.Context,
	teacherID uint,
) (availability.Template, error) {

	var row models.SlotTemplate
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return availability.EmptyTemplate(teacherID), nil
	}
	if err != nil {
		if !r.db.WithContext(ctx).Migrator().HasTable(&models.SlotTemplate{}) {
			r.logger.Warn("Slot template table missing, serving empty template",
				zap.Uint("teacher_id", teacherID))
			return availability.EmptyTemplate(teacherID), nil
		}
		return availability.Template{}, fmt.Errorf("get slot template: %w", err)
	}

	return decodeTemplate(r.logger, teacherID, &row.ChamberNo, &row.Bio, row.AvailableSlots), nil
}

func (r *TemplateGormRepository) Save(
	ctx context.Context,
	t availability.Template,
) error {

	row := models.SlotTemplate{
		TeacherID:      t.TeacherID,
		ChamberNo:      t.ChamberNo,
		Bio:            t.Bio,
		AvailableSlots: datatypes.JSON(t.Schedule.JSON()),
	}

	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"chamber_no", "bio", "available_slots", "updated_at"}),
		}).
		Create(&row).Error; err != nil {
		return fmt.Errorf("save slot template: %w", err)
	}

	return nil
}

// decodeTemplate turns stored template columns into a Template. A NULL or
// blank chamber reads as DefaultChamber; an undecodable schedule is logged
// and served as empty.
func decodeTemplate(
	logger *zap.Logger,
	teacherID uint,
	chamber *string,
	bio *string,
	raw []byte,
) availability.Template {

	t := availability.EmptyTemplate(teacherID)

	if chamber != nil && *chamber != "" {
		t.ChamberNo = *chamber
	}
	if bio != nil {
		t.Bio = *bio
	}

	schedule, err := availability.ParseSchedule(raw)
	if err != nil {
		logger.Warn("Invalid slot schedule, serving empty schedule",
			zap.Uint("teacher_id", teacherID),
			zap.Error(err))
		return t
	}

	t.Schedule = schedule
	return t
}

var _ availability.TemplateStore = (*TemplateGormRepository)(nil)
