package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/akolanti/DocSummarizer/internal/adapter/utils"
	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/handlers"
	"github.com/akolanti/DocSummarizer/internal/middleware"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          *logger_i.Logger
}

// Stopper is anything that must drain after the listener closes.
type Stopper interface {
	Stop()
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	Workers          Stopper
	CloseServices    context.CancelFunc
}

// NewRouter mounts every route. mcpHandler may be nil.
func NewRouter(h *handlers.Handler, mw *middleware.Middleware, mcpHandler http.Handler) http.Handler {
	r := utils.NewRouter()

	r.Router.Get("/health", mw.WrapPublic(h.HealthHandler))
	r.Router.Post("/signup", mw.WrapPublic(h.SignupHandler))
	r.Router.Post("/login", mw.WrapPublic(h.LoginHandler))
	r.Router.Post("/logout", mw.Wrap(h.LogoutHandler))

	r.Router.Post("/upload", mw.Wrap(h.UploadHandler))
	r.Router.Post("/summaries", mw.Wrap(h.SummariesHandler))
	r.Router.Post("/summaries/combined", mw.Wrap(h.CombinedSummaryHandler))
	r.Router.Post("/search", mw.Wrap(h.SearchHandler))

	if mcpHandler != nil {
		r.Router.Handle("/mcp", mw.Wrap(mcpHandler.ServeHTTP))
	}
	return r.Router
}

func CreateServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
		logger:          logger_i.NewLogger("Server"),
	}
}

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("Server is listening at", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err, "addr", s.httpServer.Addr)
		return err
	}
	return nil
}

func (s *Server) ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", state.String())

	timeout := s.shutdownTimeout
	if timeout <= 0 {
		timeout = config.ShutdownContextTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.httpServer.SetKeepAlivesEnabled(false)

		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		if shutdownParams.Workers != nil {
			shutdownParams.Workers.Stop()
		}
		if shutdownParams.CloseServices != nil {
			shutdownParams.CloseServices()
		}
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Gracefully shut down")
		close(shutdownParams.StopExecution)
	case <-ctx.Done():
		s.logger.Error("Force Shut down")
		os.Exit(1)
	}
}
