// FILE: internal/bootstrap/container.go
package bootstrap

import (
	"time"

	"procurement-dashboard-be/internal/authflow"
	"procurement-dashboard-be/internal/config"
	"procurement-dashboard-be/internal/controller"
	"procurement-dashboard-be/internal/gateway"
	"procurement-dashboard-be/internal/pkg/logger"
	"procurement-dashboard-be/internal/pkg/mailer"
	"procurement-dashboard-be/internal/poller"
	"procurement-dashboard-be/internal/querycache"
	"procurement-dashboard-be/internal/service"
	"procurement-dashboard-be/internal/session"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	UserController        controller.IUserController
	ProcurementController controller.IProcurementController
	BillingController     controller.IBillingController
	FavoritesController   controller.IFavoritesController

	// Exposed for graceful shutdown
	Watches *poller.Manager
	Logger  logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	gw := gateway.NewClient(cfg.Backend.BaseURL, cfg.Backend.RSSBaseURL, sysLogger)
	cache := querycache.New()
	watches := poller.NewManager(time.Duration(cfg.Backend.PollSecs)*time.Second, sysLogger)
	flows := authflow.NewStore()
	sessions := session.NewManager(gw, cache, sysLogger,
		cfg.Auth.CookieName, cfg.Auth.CookieTTLDays, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			cfg.App.ClientURL,
		)
	}

	// 2. Services
	authService := service.NewAuthService(gw, flows, &cfg.Auth, sysLogger)
	userService := service.NewUserService(gw, cache, sysLogger)
	procurementService := service.NewProcurementService(gw, cache, watches, emailService, cfg.Auth.NotifyCompletion, sysLogger)
	billingService := service.NewBillingService(gw, cache, sysLogger)
	favoritesService := service.NewFavoritesService(gw, cache, sysLogger)

	// 3. Controllers
	authMiddleware := controller.NewAuthMiddleware(sessions)

	return &Container{
		AuthController:        controller.NewAuthController(authService, sessions, cfg.App.ClientURL),
		UserController:        controller.NewUserController(userService, authMiddleware),
		ProcurementController: controller.NewProcurementController(procurementService, authMiddleware),
		BillingController:     controller.NewBillingController(billingService, authMiddleware),
		FavoritesController:   controller.NewFavoritesController(favoritesService, authMiddleware),

		Watches: watches,
		Logger:  sysLogger,
	}
}
