package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-portal/internal/backend"
	"github.com/jwalitptl/clinic-portal/internal/config"
	"github.com/jwalitptl/clinic-portal/internal/gate"
	"github.com/jwalitptl/clinic-portal/internal/handler"
	adminHandler "github.com/jwalitptl/clinic-portal/internal/handler/admin"
	authHandler "github.com/jwalitptl/clinic-portal/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/clinic-portal/internal/handler/doctor"
	"github.com/jwalitptl/clinic-portal/internal/middleware"
	"github.com/jwalitptl/clinic-portal/internal/notice"
	"github.com/jwalitptl/clinic-portal/internal/repository/sqlite"
	"github.com/jwalitptl/clinic-portal/internal/router"
	adminService "github.com/jwalitptl/clinic-portal/internal/service/admin"
	doctorService "github.com/jwalitptl/clinic-portal/internal/service/doctor"
	"github.com/jwalitptl/clinic-portal/internal/session"
	"github.com/jwalitptl/clinic-portal/pkg/logger"
	"github.com/jwalitptl/clinic-portal/pkg/metrics"
)

func main() {
	// Local overrides only; absence is not an error.
	_ = godotenv.Load()

	if err := logger.Setup(); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := sqlite.NewDB(cfg.Storage.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session database")
	}
	defer db.Close()

	ctx := context.Background()
	tokenRepo := sqlite.NewTokenRepository(db)

	adminSessions, err := session.NewStore(ctx, session.RoleAdmin, tokenRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore admin session")
	}
	doctorSessions, err := session.NewStore(ctx, session.RoleDoctor, tokenRepo)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore doctor session")
	}

	g := gate.New(adminSessions, doctorSessions)

	api := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout())
	adminAPI := backend.NewAdminClient(api, adminSessions)
	doctorAPI := backend.NewDoctorClient(api, doctorSessions)

	m := metrics.NewMetrics("portal", "")
	notifier := notice.NewLogNotifier(log.Logger)

	adminSvc := adminService.NewService(adminAPI, adminSessions, notifier, m)
	doctorSvc := doctorService.NewService(doctorAPI, doctorSessions, notifier, m)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(adminSvc, doctorSvc, g)
	adminH := adminHandler.NewHandler(adminSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)

	gateMW := middleware.NewGateMiddleware(g)

	r := router.NewRouter(gateMW, authH, adminH, doctorH, h, router.RouterConfig{
		RateLimit:  rate.Limit(cfg.RateLimit.RPS),
		RateBurst:  cfg.RateLimit.Burst,
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("backend", cfg.Backend.BaseURL).Msg("starting portal")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
