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
	"github.com/rs/zerolog"

	"github.com/de-tools/rtb-report/pkg/handlers/reports"
	"github.com/de-tools/rtb-report/pkg/models/domain"
	rtbmiddleware "github.com/de-tools/rtb-report/pkg/server/middleware"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Defaults        domain.ReportConfig
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	handler := reports.NewHandler(config.Defaults)

	router := chi.NewRouter()

	router.Use(rtbmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reports/analyze", handler.Analyze)
	})

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: timeout,
	}
}

// Router exposes the configured mux, mostly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
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
