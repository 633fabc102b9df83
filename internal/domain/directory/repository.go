package directory

import (
	"context"

	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/models"
)

// Entry is a teacher as shown in the booking directory.
type Entry struct {
	Teacher  models.Teacher
	Template availability.Template
}

// Repository exposes the two lookup tiers of the directory. Both apply the
// same matching and ordering; the teachers-only tier fills template fields
// with availability.EmptyTemplate.
type Repository interface {
	HasTemplates(ctx context.Context) bool
	SearchWithTemplates(ctx context.Context, query string) ([]Entry, error)
	SearchTeachersOnly(ctx context.Context, query string) ([]Entry, error)
}
