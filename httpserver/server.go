package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"nettileffa/movie"
	"nettileffa/pkg/config"
	"nettileffa/pkg/logger"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Config *config.Config
	Logger *zap.SugaredLogger

	MovieService movie.Service

	// RateLimiterStore defaults to an in-memory store sized by
	// Config.RateLimit.
	RateLimiterStore middleware.RateLimiterStore
}

// Default builds a server from cfg alone. Movie routes answer 501 until a
// MovieService is set.
func Default(cfg *config.Config) *Server {
	s, _ := New(WithConfig(cfg))
	return s
}

func New(options ...Options) (*Server, error) {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Config:       config.Empty,
		Logger:       logger.NOOPLogger,
	}

	for _, fn := range options {
		if err := fn(&s); err != nil {
			return nil, err
		}
	}
	if s.Config == nil {
		s.Config = config.Empty
	}
	if s.Logger == nil {
		s.Logger = logger.NOOPLogger
	}

	if s.Config.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", s.Config.Port)
	}
	if s.Config.AllowOrigins != "" {
		s.AllowOrigins = splitOrigins(s.Config.AllowOrigins)
	}

	s.Router.HideBanner = true
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.Router.Validator = NewValidator()
	s.RegisterGlobalMiddlewares()

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	api := s.Router.Group("/api")
	s.RegisterMovieRoutes(api)
	s.RegisterGenreRoutes(api)
	s.RegisterPersonRoutes(api)

	return &s, nil
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))

	if store := s.rateLimiterStore(); store != nil {
		s.Router.Use(middleware.RateLimiter(store))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		}))
	}
}

// rateLimiterStore returns nil when RATE_LIMIT is zero.
func (s *Server) rateLimiterStore() middleware.RateLimiterStore {
	if s.RateLimiterStore != nil {
		return s.RateLimiterStore
	}
	if s.Config.RateLimit <= 0 {
		return nil
	}
	return middleware.NewRateLimiterMemoryStore(rate.Limit(s.Config.RateLimit))
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
