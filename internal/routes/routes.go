package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/campus-booking/internal/audit"
	"github.com/BruksfildServices01/campus-booking/internal/config"
	"github.com/BruksfildServices01/campus-booking/internal/domain/availability"
	"github.com/BruksfildServices01/campus-booking/internal/handlers"
	"github.com/BruksfildServices01/campus-booking/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/campus-booking/internal/infra/repository"
	"github.com/BruksfildServices01/campus-booking/internal/middleware"
	"github.com/BruksfildServices01/campus-booking/internal/models"
	"github.com/BruksfildServices01/campus-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/campus-booking/internal/usecase/booking"
	ucDirectory "github.com/BruksfildServices01/campus-booking/internal/usecase/directory"
	ucTemplate "github.com/BruksfildServices01/campus-booking/internal/usecase/template"
)

// Deps are the process-wide singletons routes are built from. Redis is
// optional; Clock defaults to the configured service timezone.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Logger *zap.Logger
	Redis  *redis.Client
	Audit  *audit.Dispatcher
	Clock  timezone.Clock
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORSMiddleware(),
	)

	clock := d.Clock
	if clock == nil {
		clock = timezone.SystemClock(d.Config.Timezone)
	}

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	directoryRepo := infraRepo.NewDirectoryGormRepository(d.DB, d.Logger)

	var templates availability.TemplateStore = infraRepo.NewTemplateGormRepository(d.DB, d.Logger)
	if d.Redis != nil {
		templates = cache.NewTemplateCache(templates, d.Redis, d.Config.TemplateCacheTTL, d.Logger)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, templates, d.Audit, clock, d.Logger)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, d.Audit, clock, d.Logger)
	listStudentUC := ucBooking.NewListBookingsForStudent(bookingRepo)
	listTeacherUC := ucBooking.NewListBookingsForTeacher(bookingRepo)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, d.Audit, d.Logger)
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, templates)

	searchUC := ucDirectory.NewSearchTeachers(directoryRepo, d.Logger)

	getTemplateUC := ucTemplate.NewGetTemplate(bookingRepo, templates)
	saveTemplateUC := ucTemplate.NewSaveTemplate(bookingRepo, templates, d.Audit, d.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.DB)
	directoryHandler := handlers.NewDirectoryHandler(searchUC, d.Logger)
	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		listStudentUC,
		availabilityUC,
		d.Logger,
	)
	teacherHandler := handlers.NewTeacherHandler(
		getTemplateUC,
		saveTemplateUC,
		listTeacherUC,
		updateStatusUC,
		d.Logger,
	)
	meHandler := handlers.NewMeHandler(d.DB, d.Logger)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, timezone.Location(d.Config.Timezone), d.Logger)

	// ======================================================
	// ROUTES
	// ======================================================
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(d.Config))
	{
		api.GET("/me", meHandler.GetMe)
		api.GET("/me/audit-logs", auditLogsHandler.List)

		// ------------------------------
		// STUDENT
		// ------------------------------
		student := api.Group("/")
		student.Use(middleware.RequireRole(models.RoleStudent))
		{
			student.GET("/teachers/search", directoryHandler.Search)
			student.GET("/teachers/:id/availability", bookingHandler.Availability)

			student.POST("/bookings", bookingHandler.Create)
			student.POST("/bookings/cancel", bookingHandler.Cancel)
			student.GET("/bookings", bookingHandler.List)
		}

		// ------------------------------
		// TEACHER
		// ------------------------------
		teacher := api.Group("/teacher")
		teacher.Use(middleware.RequireRole(models.RoleTeacher))
		{
			teacher.GET("/slots", teacherHandler.GetSlots)
			teacher.PUT("/slots", teacherHandler.SaveSlots)

			teacher.GET("/bookings", teacherHandler.ListBookings)
			teacher.PATCH("/bookings/:id/confirm", teacherHandler.Confirm)
			teacher.PATCH("/bookings/:id/reject", teacherHandler.Reject)
			teacher.PATCH("/bookings/:id/complete", teacherHandler.Complete)
		}
	}
}
