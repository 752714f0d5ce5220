package api

import (
	"marketplace/internal/adapter/api/handler"
	apimiddleware "marketplace/internal/adapter/api/middleware"
	"marketplace/internal/adapter/api/router"
	"marketplace/internal/infrastructure/memory"
	"marketplace/internal/infrastructure/ratelimit"
	"marketplace/pkg/response"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	Echo    *echo.Echo
	Backend *memory.Backend
	Faults  *apimiddleware.Faults
}

type ServerOption func(*serverOptions)

type serverOptions struct {
	limiter    *ratelimit.RateLimiter
	requestLog bool
}

func WithRateLimiter(limiter *ratelimit.RateLimiter) ServerOption {
	return func(o *serverOptions) {
		o.limiter = limiter
	}
}

// WithRequestLog enables echo's access log.
func WithRequestLog() ServerOption {
	return func(o *serverOptions) {
		o.requestLog = true
	}
}

// NewServer wires the marketplace API over backend.
func NewServer(backend *memory.Backend, opts ...ServerOption) *Server {
	o := serverOptions{limiter: ratelimit.NewRateLimiter()}
	for _, opt := range opts {
		opt(&o)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = response.Error(c, err)
	}

	if o.requestLog {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	faults := apimiddleware.NewFaults()
	e.Use(faults.Middleware)

	h := handler.Setup(backend, o.limiter)
	router.Setup(e, h, apimiddleware.NewAuthMiddleware(backend), o.limiter)

	return &Server{
		Echo:    e,
		Backend: backend,
		Faults:  faults,
	}
}

// FailNext arms a one-shot failure on the next matching request.
func (s *Server) FailNext(method, path string, status int) {
	s.Faults.FailNext(method, path, status)
}
