package movie

import (
	"context"
	"time"
)

type EventType string

const (
	EventMovieCreated EventType = "movie.created"
	EventMovieUpdated EventType = "movie.updated"
)

// Event is emitted after a movie mutation has been committed.
type Event struct {
	Type       EventType `json:"type"`
	Movie      Movie     `json:"movie"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
