package repository

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/domain/directory"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

type DirectoryGormRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDirectoryGormRepository(db *gorm.DB, logger *zap.Logger) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db, logger: logger}
}

type directoryRow struct {
	ID             uint
	FName          string `gorm:"column:fname"`
	LName          string `gorm:"column:lname"`
	Subject        string
	Email          string
	Phone          string
	ChamberNo      *string
	Bio            *string
	AvailableSlots *string
}

func (r *DirectoryGormRepository) HasTemplates(ctx context.Context) bool {
	return r.db.WithContext(ctx).Migrator().HasTable(&models.SlotTemplate{})
}

func (r *DirectoryGormRepository) SearchWithTemplates(
	ctx context.Context,
	query string,
) ([]directory.Entry, error) {

	q := r.db.WithContext(ctx).
		Table("teachers AS t").
		Select("t.id, t.fname, t.lname, t.subject, t.email, t.phone, ts.chamber_no, ts.bio, ts.available_slots").
		Joins("LEFT JOIN teacher_slots ts ON ts.teacher_id = t.id")

	var rows []directoryRow
	if err := matchTeachers(q, "t.", query).
		Order("t.fname ASC").
		Order("t.lname ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("search teachers with templates: %w", err)
	}

	out := make([]directory.Entry, 0, len(rows))
	for _, row := range rows {
		var raw []byte
		if row.AvailableSlots != nil {
			raw = []byte(*row.AvailableSlots)
		}

		out = append(out, directory.Entry{
			Teacher: models.Teacher{
				ID:        row.ID,
				FirstName: row.FName,
				LastName:  row.LName,
				Subject:   row.Subject,
				Email:     row.Email,
				Phone:     row.Phone,
			},
			Template: decodeTemplate(r.logger, row.ID, row.ChamberNo, row.Bio, raw),
		})
	}

	return out, nil
}

func (r *DirectoryGormRepository) SearchTeachersOnly(
	ctx context.Context,
	query string,
) ([]directory.Entry, error) {

	var teachers []models.Teacher
	if err := matchTeachers(r.db.WithContext(ctx).Model(&models.Teacher{}), "", query).
		Order("fname ASC").
		Order("lname ASC").
		Find(&teachers).Error; err != nil {
		return nil, fmt.Errorf("search teachers: %w", err)
	}

	out := make([]directory.Entry, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, directory.Entry{
			Teacher:  t,
			Template: availability.EmptyTemplate(t.ID),
		})
	}

	return out, nil
}

// matchTeachers applies the case-insensitive substring filter on first name,
// last name, subject and "first last". prefix qualifies the columns.
func matchTeachers(q *gorm.DB, prefix, query string) *gorm.DB {
	query = strings.TrimSpace(query)
	if query == "" {
		return q
	}

	like := "%" + escapeLike(strings.ToLower(query)) + "%"
	cond := fmt.Sprintf(
		"(LOWER(%[1]sfname) LIKE ? ESCAPE '\\' OR LOWER(%[1]slname) LIKE ? ESCAPE '\\' "+
			"OR LOWER(%[1]ssubject) LIKE ? ESCAPE '\\' OR LOWER(%[1]sfname || ' ' || %[1]slname) LIKE ? ESCAPE '\\')",
		prefix,
	)

	return q.Where(cond, like, like, like, like)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var _ directory.Repository = (*DirectoryGormRepository)(nil)
