package directory

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/campus-booking/internal/domain/directory"
)

type SearchTeachers struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewSearchTeachers(repo domain.Repository, logger *zap.Logger) *SearchTeachers {
	return &SearchTeachers{repo: repo, logger: logger}
}

// Execute joins template fields when teacher_slots exists and otherwise
// answers from teachers alone with placeholder template fields.
func (uc *SearchTeachers) Execute(
	ctx context.Context,
	query string,
) ([]domain.Entry, error) {

	if uc.repo.HasTemplates(ctx) {
		return uc.repo.SearchWithTemplates(ctx, query)
	}

	uc.logger.Warn("Slot template table unavailable, searching teachers only")
	return uc.repo.SearchTeachersOnly(ctx, query)
}
