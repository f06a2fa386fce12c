package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/medagenda/clinic-api/internal/config"
	"github.com/medagenda/clinic-api/internal/email"
	"github.com/medagenda/clinic-api/internal/handler"
	appointmentHandler "github.com/medagenda/clinic-api/internal/handler/appointment"
	authHandler "github.com/medagenda/clinic-api/internal/handler/auth"
	clinicHandler "github.com/medagenda/clinic-api/internal/handler/clinic"
	dashboardHandler "github.com/medagenda/clinic-api/internal/handler/dashboard"
	doctorHandler "github.com/medagenda/clinic-api/internal/handler/doctor"
	patientHandler "github.com/medagenda/clinic-api/internal/handler/patient"
	referenceHandler "github.com/medagenda/clinic-api/internal/handler/reference"
	"github.com/medagenda/clinic-api/internal/middleware"
	"github.com/medagenda/clinic-api/internal/repository/postgres"
	"github.com/medagenda/clinic-api/internal/router"
	appointmentService "github.com/medagenda/clinic-api/internal/service/appointment"
	authService "github.com/medagenda/clinic-api/internal/service/auth"
	clinicService "github.com/medagenda/clinic-api/internal/service/clinic"
	dashboardService "github.com/medagenda/clinic-api/internal/service/dashboard"
	doctorService "github.com/medagenda/clinic-api/internal/service/doctor"
	eventService "github.com/medagenda/clinic-api/internal/service/event"
	patientService "github.com/medagenda/clinic-api/internal/service/patient"
	"github.com/medagenda/clinic-api/pkg/auth"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/metrics"
	"github.com/medagenda/clinic-api/pkg/security"
)

func main() {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log := &logger.Logger{ZL: zl}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	clinicRepo := postgres.NewClinicRepository(base)
	doctorRepo := postgres.NewDoctorRepository(base)
	patientRepo := postgres.NewPatientRepository(base)
	appointmentRepo := postgres.NewAppointmentRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)
	tokenRepo := postgres.NewTokenRepository(base)
	countsRepo := postgres.NewCountsRepository(base)

	m := metrics.New("clinic_api")

	tokenSvc := auth.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)
	mailer := email.NewSMTPService(email.Config{
		Host:    cfg.SMTP.Host,
		Port:    cfg.SMTP.Port,
		User:    cfg.SMTP.User,
		Pass:    cfg.SMTP.Password,
		From:    cfg.SMTP.From,
		BaseURL: cfg.SMTP.BaseURL,
	})

	eventSvc := eventService.NewService(outboxRepo, log)
	authSvc := authService.NewService(userRepo, tokenRepo, tokenSvc, hasher, mailer, log)
	clinicSvc := clinicService.NewService(clinicRepo)
	doctorSvc := doctorService.NewService(doctorRepo, clinicRepo)
	patientSvc := patientService.NewService(patientRepo, clinicRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, doctorRepo, patientRepo, clinicRepo)

	cacheTTL := time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}
	dashboardSvc := dashboardService.NewService(countsRepo, clinicSvc, cacheTTL, m)

	authMw := middleware.NewAuthMiddleware(authSvc)

	authH := authHandler.NewHandler(authSvc)
	healthH := handler.NewHealthHandler(db)
	protected := []router.Handler{
		clinicHandler.NewHandler(clinicSvc, dashboardSvc, eventSvc),
		doctorHandler.NewHandler(doctorSvc, dashboardSvc, eventSvc),
		patientHandler.NewHandler(patientSvc, dashboardSvc, eventSvc),
		appointmentHandler.NewHandler(appointmentSvc, dashboardSvc, eventSvc),
		dashboardHandler.NewHandler(dashboardSvc),
		referenceHandler.NewHandler(),
	}

	rps := cfg.RateLimit.RPS
	if rps == 0 {
		rps = 100
	}
	burst := cfg.RateLimit.Burst
	if burst == 0 {
		burst = 200
	}

	r := router.New(zl, authMw, healthH, authH, protected, router.Config{
		RateLimit: rate.Limit(rps),
		RateBurst: burst,
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORS:      middleware.DefaultCORSConfig(),
		Namespace: "clinic_api",
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}

	log.Info("server stopped")
}
