package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"
	"github.com/unrolled/secure"

	handlers "github.com/de-tools/fmcg-atlas/pkg/handlers/dashboard"
	atlasmiddleware "github.com/de-tools/fmcg-atlas/pkg/server/middleware"
)

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Insights handlers.InsightsService
	Forecast handlers.ForecastService
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// RateLimit is requests per minute per client IP; zero disables it.
	RateLimit    int
	Production   bool
	Dependencies Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	handler := handlers.NewHandler(config.Dependencies.Insights, config.Dependencies.Forecast)
	logger := config.Dependencies.Logger

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'",
		SSLRedirect:           config.Production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:         !config.Production,
	})

	router := chi.NewRouter()

	router.Use(atlasmiddleware.RequestID)
	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)
	router.Use(secureMiddleware.Handler)
	if config.RateLimit > 0 {
		router.Use(httprate.Limit(config.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
	}
	if config.RequestTimeout > 0 {
		router.Use(atlasmiddleware.Timeout(config.RequestTimeout))
	}

	router.Get("/healthz", handler.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", handler.GetDashboard)
		r.Get("/dashboard/{section}", handler.GetDashboardSection)
		r.Get("/forecast", handler.GetForecast)
		r.Get("/forecast/{section}", handler.GetForecastSection)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
