package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/facuperezm/barberia-sub000/internal/audit"
	"github.com/facuperezm/barberia-sub000/internal/clock"
	"github.com/facuperezm/barberia-sub000/internal/config"
	"github.com/facuperezm/barberia-sub000/internal/domain/schedule"
	"github.com/facuperezm/barberia-sub000/internal/handlers"
	infraRepo "github.com/facuperezm/barberia-sub000/internal/infra/repository"
	"github.com/facuperezm/barberia-sub000/internal/metrics"
	"github.com/facuperezm/barberia-sub000/internal/middleware"
	"github.com/facuperezm/barberia-sub000/internal/ratelimit"
	ucAppointment "github.com/facuperezm/barberia-sub000/internal/usecase/appointment"
	ucCatalog "github.com/facuperezm/barberia-sub000/internal/usecase/catalog"
	ucSchedule "github.com/facuperezm/barberia-sub000/internal/usecase/schedule"
)

// Infra holds the process-wide collaborators built in main. Payments and
// Uploader stay nil when their integration is not configured.
type Infra struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Metrics  *metrics.Metrics
	Clock    clock.Clock
	Audit    *audit.Dispatcher
	AuditLog *audit.Logger
	Notifier ucAppointment.Notifier
	Payments ucAppointment.PaymentGateway
	Uploader ucCatalog.Uploader
	Limiter  ratelimit.Limiter
}

func RegisterRoutes(r *gin.Engine, in Infra) {
	cfg := in.Config

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(in.Log))
	r.Use(in.Metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORS))

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(in.DB, in.Log)
	scheduleRepo := infraRepo.NewScheduleGormRepository(in.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(in.DB)

	policy := ucAppointment.Policy{
		Location:         cfg.Location(),
		MinAdvance:       cfg.MinAdvance(),
		CheckEmailDomain: cfg.ValidateEmailDomain,
		Fallback: schedule.Interval{
			Start: schedule.MustTimeOfDay(cfg.FallbackStart),
			End:   schedule.MustTimeOfDay(cfg.FallbackEnd),
		},
	}

	// ======================================================
	// USE CASES / SCHEDULE
	// ======================================================
	resolveScheduleUC := ucSchedule.NewResolveSchedule(appointmentRepo, policy.Fallback)
	createOverrideUC := ucSchedule.NewCreateOverride(scheduleRepo, in.Audit)
	listOverridesUC := ucSchedule.NewListOverrides(scheduleRepo)
	deleteOverrideUC := ucSchedule.NewDeleteOverride(scheduleRepo, in.Audit)
	updateWeeklyUC := ucSchedule.NewUpdateWeeklySchedule(scheduleRepo, in.Audit)

	// ======================================================
	// USE CASES / APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		resolveScheduleUC,
		in.Clock,
		policy,
		in.Metrics,
	)

	createBookingUC := ucAppointment.NewCreateBooking(
		appointmentRepo,
		in.Clock,
		policy,
		in.Audit,
		in.Notifier,
		in.Payments,
		in.Metrics,
		in.Log,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		appointmentRepo,
		in.Clock,
		in.Audit,
		in.Notifier,
		in.Metrics,
	)

	applyPaymentUC := ucAppointment.NewApplyPayment(in.Payments, updateStatusUC, in.Log)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// USE CASES / CATALOG
	// ======================================================
	listBarbersUC := ucCatalog.NewListBarbers(catalogRepo)
	createBarberUC := ucCatalog.NewCreateBarber(catalogRepo, in.Audit)
	uploadPhotoUC := ucCatalog.NewUploadBarberPhoto(catalogRepo, in.Uploader, in.Audit)
	listServicesUC := ucCatalog.NewListServices(catalogRepo)
	createServiceUC := ucCatalog.NewCreateService(catalogRepo, in.Audit)
	updateServiceUC := ucCatalog.NewUpdateService(catalogRepo, in.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(availabilityUC, createBookingUC, listBarbersUC, listServicesUC)
	appointmentHandler := handlers.NewAppointmentHandler(updateStatusUC, listAppointmentsByDateUC, listAppointmentsByMonthUC)
	scheduleHandler := handlers.NewScheduleHandler(createOverrideUC, listOverridesUC, deleteOverrideUC, updateWeeklyUC)
	barberHandler := handlers.NewBarberHandler(listBarbersUC, createBarberUC, uploadPhotoUC)
	serviceHandler := handlers.NewServiceHandler(listServicesUC, createServiceUC, updateServiceUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(in.AuditLog)
	webhookHandler := handlers.NewPaymentWebhookHandler(applyPaymentUC, in.Log)
	meHandler := handlers.NewMeHandler(cfg)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(in.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments",
				middleware.RateLimit(in.Limiter, "booking", in.Metrics, in.Log),
				publicHandler.CreateAppointment,
			)
		}

		api.POST("/webhooks/payments", webhookHandler.Handle)

		// ------------------------------
		// STAFF
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("", meHandler.GetMe)

			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)

			secured.POST("/schedule-overrides", scheduleHandler.CreateOverride)
			secured.GET("/schedule-overrides", scheduleHandler.ListOverrides)
			secured.DELETE("/schedule-overrides/:id", scheduleHandler.DeleteOverride)

			secured.GET("/barbers", barberHandler.List)
			secured.POST("/barbers", barberHandler.Create)
			secured.PUT("/barbers/:id/weekly-schedule", scheduleHandler.UpdateWeekly)
			secured.POST("/barbers/:id/photo", barberHandler.UploadPhoto)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
