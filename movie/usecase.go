package movie

import (
	"context"
	"strings"
	"time"

	"nettileffa/pkg/logger"

	"go.uber.org/zap"
)

// Role selects which relationship a person search looks at.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
)

// PeopleSearchLimit bounds autocomplete results.
const PeopleSearchLimit = 10

type Service interface {
	ListMovies(ctx context.Context, q ListQuery) (Page, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, in MovieInput) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, in MovieInput) (Movie, error)
	ListGenres(ctx context.Context) ([]string, error)
	SearchActors(ctx context.Context, query string) ([]Person, error)
	SearchDirectors(ctx context.Context, query string) ([]Person, error)
}

type Repository interface {
	FindMovies(ctx context.Context, q ListQuery) (Page, error)
	GetMovie(ctx context.Context, id int64) (Movie, error)
	CreateMovie(ctx context.Context, in MovieInput) (Movie, error)
	UpdateMovie(ctx context.Context, id int64, in MovieInput) (Movie, error)
	ListGenres(ctx context.Context) ([]string, error)
	SearchPeople(ctx context.Context, role Role, query string, limit int) ([]Person, error)
}

type Option func(uc *Usecase)

func WithPublisher(p EventPublisher) Option {
	return func(uc *Usecase) {
		if p != nil {
			uc.publisher = p
		}
	}
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(uc *Usecase) {
		if l != nil {
			uc.logger = l
		}
	}
}

type Usecase struct {
	r         Repository
	publisher EventPublisher
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r:         r,
		publisher: noopPublisher{},
		logger:    logger.NOOPLogger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) ListMovies(ctx context.Context, q ListQuery) (Page, error) {
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		return Page{}, err
	}
	return uc.r.FindMovies(ctx, q)
}

func (uc *Usecase) GetMovie(ctx context.Context, id int64) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrMovieNotFound
	}
	return uc.r.GetMovie(ctx, id)
}

func (uc *Usecase) CreateMovie(ctx context.Context, in MovieInput) (Movie, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}

	m, err := uc.r.CreateMovie(ctx, in)
	if err != nil {
		return Movie{}, err
	}

	uc.publish(ctx, EventMovieCreated, m)
	return m, nil
}

func (uc *Usecase) UpdateMovie(ctx context.Context, id int64, in MovieInput) (Movie, error) {
	if id <= 0 {
		return Movie{}, ErrMovieNotFound
	}
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Movie{}, err
	}

	m, err := uc.r.UpdateMovie(ctx, id, in)
	if err != nil {
		return Movie{}, err
	}

	uc.publish(ctx, EventMovieUpdated, m)
	return m, nil
}

func (uc *Usecase) ListGenres(ctx context.Context) ([]string, error) {
	return uc.r.ListGenres(ctx)
}

// SearchActors returns actors whose name contains query. An empty query
// returns the first PeopleSearchLimit actors in name order.
func (uc *Usecase) SearchActors(ctx context.Context, query string) ([]Person, error) {
	return uc.r.SearchPeople(ctx, RoleActor, strings.TrimSpace(query), PeopleSearchLimit)
}

// SearchDirectors is SearchActors for the director role.
func (uc *Usecase) SearchDirectors(ctx context.Context, query string) ([]Person, error) {
	return uc.r.SearchPeople(ctx, RoleDirector, strings.TrimSpace(query), PeopleSearchLimit)
}

// publish never fails the mutation: the row is already committed.
func (uc *Usecase) publish(ctx context.Context, t EventType, m Movie) {
	err := uc.publisher.Publish(ctx, Event{Type: t, Movie: m, OccurredAt: uc.now().UTC()})
	if err != nil {
		uc.logger.Warnw("cannot publish movie event", "type", t, "movie_id", m.ID, "error", err)
	}
}
