package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/candraczapansky/software-sub012/internal/audit"
	"github.com/candraczapansky/software-sub012/internal/config"
	"github.com/candraczapansky/software-sub012/internal/gateway"
	"github.com/candraczapansky/software-sub012/internal/handlers"
	infraRepo "github.com/candraczapansky/software-sub012/internal/infra/repository"
	"github.com/candraczapansky/software-sub012/internal/lock"
	"github.com/candraczapansky/software-sub012/internal/middleware"
	"github.com/candraczapansky/software-sub012/internal/storage"
	ucAppointment "github.com/candraczapansky/software-sub012/internal/usecase/appointment"
	ucCheckout "github.com/candraczapansky/software-sub012/internal/usecase/checkout"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, gw gateway.Gateway, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	checkoutRepo := infraRepo.NewCheckoutGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	checkoutLock := lock.New(rdb, 30*time.Second)
	photoStore := storage.NewPhotoStore(cfg)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	createRecurringUC := ucAppointment.NewCreateRecurringSeries(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateSeriesUC := ucAppointment.NewUpdateSeries(
		appointmentRepo,
		auditDispatcher,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelSeriesUC := ucAppointment.NewCancelSeries(
		appointmentRepo,
		auditDispatcher,
	)

	listByRangeUC := ucAppointment.NewListByRange(appointmentRepo)
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// 🧠 USE CASES — CHECKOUT
	// ======================================================
	payCashUC := ucCheckout.NewPayCash(checkoutRepo, checkoutLock, auditDispatcher)
	payCardUC := ucCheckout.NewPayCard(checkoutRepo, checkoutLock, gw, auditDispatcher)
	payTerminalUC := ucCheckout.NewPayTerminal(
		checkoutRepo,
		checkoutLock,
		gw,
		auditDispatcher,
		cfg.TerminalPollAttempts,
		time.Duration(cfg.TerminalPollInterval)*time.Second,
	)
	payGiftCardUC := ucCheckout.NewPayGiftCard(checkoutRepo, checkoutLock, auditDispatcher)
	validatePromoUC := ucCheckout.NewValidatePromo(checkoutRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	locationHandler := handlers.NewLocationHandler(db, cfg)
	clientHandler := handlers.NewClientHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db)
	staffHandler := handlers.NewStaffHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		createRecurringUC,
		updateAppointmentUC,
		updateSeriesUC,
		cancelAppointmentUC,
		cancelSeriesUC,
		listByRangeUC,
	)

	checkoutHandler := handlers.NewCheckoutHandler(
		payCashUC,
		payCardUC,
		payTerminalUC,
		payGiftCardUC,
		validatePromoUC,
	)

	giftCardHandler := handlers.NewGiftCardHandler(db)
	promoHandler := handlers.NewPromoHandler(db)
	photoHandler := handlers.NewPhotoHandler(db, photoStore)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/locations", locationHandler.List)
			secured.POST("/locations", locationHandler.Create)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Deactivate)

			secured.GET("/products", productHandler.List)
			secured.POST("/products", productHandler.Create)
			secured.PATCH("/products/:id", productHandler.Update)

			secured.GET("/staff", staffHandler.List)
			secured.PUT("/staff/:id/services", staffHandler.AssignServices)

			secured.GET("/schedules", scheduleHandler.List)
			secured.POST("/schedules", scheduleHandler.Create)
			secured.PATCH("/schedules/:id", scheduleHandler.Update)
			secured.DELETE("/schedules/:id", scheduleHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/availability", availabilityHandler.Get)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByRange)
			secured.PATCH("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.POST("/recurring-appointments", appointmentHandler.CreateRecurring)
			secured.PATCH("/recurring-appointments/:groupId", appointmentHandler.UpdateSeries)
			secured.PATCH("/recurring-appointments/:groupId/cancel", appointmentHandler.CancelSeries)

			// ------------------------------
			// CHECKOUT
			// ------------------------------
			secured.POST("/appointments/:id/checkout/cash", checkoutHandler.PayCash)
			secured.POST("/appointments/:id/checkout/card", checkoutHandler.PayCard)
			secured.POST("/appointments/:id/checkout/terminal", checkoutHandler.PayTerminal)
			secured.POST("/appointments/:id/checkout/gift-card", checkoutHandler.PayGiftCard)

			secured.POST("/appointments/:id/photos", photoHandler.Upload)
			secured.GET("/appointments/:id/photos", photoHandler.List)

			// ------------------------------
			// GIFT CARDS & PROMOS
			// ------------------------------
			secured.POST("/gift-cards", giftCardHandler.Issue)
			secured.GET("/gift-cards/:code", giftCardHandler.GetByCode)
			secured.GET("/gift-cards/:code/transactions", giftCardHandler.ListTransactions)

			secured.POST("/promo-codes", promoHandler.Create)
			secured.GET("/promo-codes", promoHandler.List)
			secured.PATCH("/promo-codes/:id", promoHandler.Update)
			secured.POST("/promo-codes/validate", checkoutHandler.ValidatePromo)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
