package api

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/phuslu/log"

	"github.com/cleared-dev/ratios/internal/analysis"
	"github.com/cleared-dev/ratios/internal/auth"
	"github.com/cleared-dev/ratios/internal/report"
)

// Options configures a Server.
type Options struct {
	Analysis  *analysis.Service
	Auth      *auth.Service
	Exporters *report.Registry
	// ExportFileName is the download name; its extension follows the format.
	ExportFileName string
	// DefaultFormat is used when an export request names none.
	DefaultFormat string
	// MaxUploadMB bounds the request body.
	MaxUploadMB int
	Logger      *log.Logger
}

// Server is the HTTP surface of the ratio analyzer.
type Server struct {
	app      *fiber.App
	opts     Options
	validate *validator.Validate
}

// NewServer creates a Server with all routes registered.
func NewServer(opts Options) *Server {
	if opts.MaxUploadMB <= 0 {
		opts.MaxUploadMB = 20
	}
	s := &Server{opts: opts, validate: validator.New()}
	s.app = fiber.New(fiber.Config{
		AppName:               "ratios",
		BodyLimit:             opts.MaxUploadMB << 20,
		DisableStartupMessage: true,
		ErrorHandler:          handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(s.requestLogger)

	api := s.app.Group("/api")
	api.Get("/health", s.handleHealth)
	api.Post("/login", s.handleLogin)

	api.Post("/logout", s.requireSession, s.handleLogout)
	api.Post("/ratios", s.requireSession, s.handleRatios)
	api.Post("/ratios/export", s.requireSession, s.handleExport)
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is cancelled.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info().Str("addr", addr).Msg("listening")
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return c.Status(code).JSON(errorResponse{Error: msg})
}
