package httpserver

import (
	"nettileffa/movie"
	"nettileffa/pkg/config"

	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Options func(s *Server) error

func WithConfig(cfg *config.Config) Options {
	return func(s *Server) error {
		s.Config = cfg
		return nil
	}
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

// WithRateLimiterStore replaces the in-memory limiter, e.g. with a
// RedisRateLimiterStore shared by several instances.
func WithRateLimiterStore(store middleware.RateLimiterStore) Options {
	return func(s *Server) error {
		s.RateLimiterStore = store
		return nil
	}
}
