package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"trailhub/internal/config"
	"trailhub/internal/database"
	"trailhub/internal/middleware"
	"trailhub/internal/modules/dispatch"
	"trailhub/internal/modules/mailer"
	"trailhub/internal/modules/notification"
	jwtsvc "trailhub/internal/pkg/jwt"
	"trailhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	eventRepo := repository.NewEventRepository(db)
	carpoolRepo := repository.NewCarpoolRepository(db)
	participantRepo := repository.NewParticipantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	dispatchService := dispatch.NewService(eventRepo, participantRepo, notificationRepo)
	dispatchHandler := dispatch.NewHandler(dispatchService, eventRepo, carpoolRepo)

	notificationService := notification.NewService(notificationRepo)
	notificationHandler := notification.NewHandler(notificationService)

	mailerService := mailer.NewService(cfg.SMTP, adminRepo, nil)
	mailerHandler := mailer.NewHandler(mailerService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// change-feed ingest, guarded by the shared internal token
	internal := r.Group("/internal")
	internal.Use(middleware.InternalTokenAuth())
	{
		dispatchHandler.RegisterRoutes(internal)
	}

	v1 := r.Group("/api/v1")
	{
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			notificationHandler.RegisterRoutes(protected)
			mailerHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
