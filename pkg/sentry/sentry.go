// Package sentry reports failed requests through the hub that the
// sentryecho middleware attaches to each echo context.
package sentry

import (
	"os"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// FlushTime bounds how long shutdown waits for buffered events.
var FlushTime = 2 * time.Second

type Sentry struct {
	context echo.Context
	tags    map[string]string
}

func WithContext(c echo.Context) *Sentry {
	return &Sentry{context: c}
}

func (s *Sentry) WithTag(key, value string) *Sentry {
	if s.tags == nil {
		s.tags = map[string]string{}
	}
	s.tags[key] = value
	return s
}

// Error captures err at error level. Nothing is sent for APP_ENV=local or
// when SENTRY_DSN is unset.
func (s *Sentry) Error(err error) {
	if err == nil || !enabled() {
		return
	}
	hub := s.hub()
	hub.WithScope(func(scope *sentrygo.Scope) {
		scope.SetLevel(sentrygo.LevelError)
		if len(s.tags) > 0 {
			scope.SetTags(s.tags)
		}
		hub.CaptureException(err)
	})
}

func enabled() bool {
	return os.Getenv("APP_ENV") != "local" && os.Getenv("SENTRY_DSN") != ""
}

func (s *Sentry) hub() *sentrygo.Hub {
	if s.context != nil {
		if hub := sentryecho.GetHubFromContext(s.context); hub != nil {
			return hub
		}
	}
	return sentrygo.CurrentHub()
}
