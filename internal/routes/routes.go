package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/MonCabinetApps/cabinet-scheduler/internal/audit"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/cache"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/config"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/handlers"
	infraRepo "github.com/MonCabinetApps/cabinet-scheduler/internal/infra/repository"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/middleware"
	"github.com/MonCabinetApps/cabinet-scheduler/internal/usecase/scheduling"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availCache := cache.NewAvailabilityCache(cfg)

	// ======================================================
	// USE CASES — SCHEDULING
	// ======================================================
	availabilityUC := scheduling.NewComputeAvailability(scheduleRepo)

	createAppointmentUC := scheduling.NewCreateAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := scheduling.NewCancelAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	confirmAppointmentUC := scheduling.NewConfirmAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	completeAppointmentUC := scheduling.NewCompleteAppointment(
		scheduleRepo,
		auditDispatcher,
	)

	listAppointmentsByDateUC := scheduling.NewListAppointmentsByDate(
		scheduleRepo,
	)

	listAppointmentsByMonthUC := scheduling.NewListAppointmentsByMonth(
		scheduleRepo,
	)

	manageTimeOffUC := scheduling.NewManageTimeOff(
		scheduleRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	practiceHandler := handlers.NewPracticeHandler(db)

	consultationTypeHandler := handlers.NewConsultationTypeHandler(db)
	patientHandler := handlers.NewPatientHandler(db)
	timeplanHandler := handlers.NewTimeplanHandler(db)
	eventHandler := handlers.NewEventHandler(db, availCache)
	timeOffHandler := handlers.NewTimeOffHandler(db, manageTimeOffUC, availCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		createAppointmentUC,
		cancelAppointmentUC,
		confirmAppointmentUC,
		completeAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
		availCache,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		createAppointmentUC,
		cancelAppointmentUC,
		availabilityUC,
		availCache,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PUBLIQUE (parcours patient)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetPractice)
			publicAPI.GET("/:slug/consultation-types", publicHandler.ListConsultationTypes)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
			publicAPI.PATCH("/:slug/appointments/:public_id/cancel", publicHandler.CancelAppointment)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVÉE (médecin connecté)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/practice", practiceHandler.GetMePractice)
			secured.PATCH("/me/practice", practiceHandler.UpdateMePractice)

			secured.GET("/me/patients", patientHandler.List)

			secured.GET("/me/consultation-types", consultationTypeHandler.List)
			secured.POST("/me/consultation-types", consultationTypeHandler.Create)
			secured.PATCH("/me/consultation-types/:id", consultationTypeHandler.Update)

			secured.GET("/me/timeplan", timeplanHandler.Get)
			secured.PUT("/me/timeplan", timeplanHandler.Update)

			secured.GET("/me/events", eventHandler.List)
			secured.POST("/me/events", eventHandler.Create)
			secured.PATCH("/me/events/:id", eventHandler.Update)
			secured.DELETE("/me/events/:id", eventHandler.Delete)

			secured.GET("/me/timeoff", timeOffHandler.List)
			secured.POST("/me/timeoff", timeOffHandler.Create)
			secured.PATCH("/me/timeoff/:id", timeOffHandler.Update)
			secured.DELETE("/me/timeoff/:id", timeOffHandler.Delete)

			// ------------------------------
			// RENDEZ-VOUS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
