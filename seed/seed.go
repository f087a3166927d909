// Package seed loads movie datasets into the catalog.
package seed

import (
	"context"
	"fmt"

	"nettileffa/errs"
	"nettileffa/movie"
	"nettileffa/pkg/logger"

	"go.uber.org/zap"
)

// Defaults for dataset rows that do not carry these values.
const (
	DefaultRating   = 3
	DefaultAgeLimit = 0
)

// Record is one movie of a dataset, in the movies-compact JSON shape.
type Record struct {
	Name     string         `json:"name"`
	Year     int            `json:"year"`
	AgeLimit *int           `json:"ageLimit"`
	Rating   *int           `json:"rating"`
	Synopsis *string        `json:"synopsis"`
	Genres   []string       `json:"genres"`
	Actors   []movie.Person `json:"actors"`
	Director *movie.Person  `json:"director"`
}

func (r Record) Input() movie.MovieInput {
	in := movie.MovieInput{
		Name:     r.Name,
		Year:     r.Year,
		AgeLimit: DefaultAgeLimit,
		Rating:   DefaultRating,
		Synopsis: r.Synopsis,
		Genres:   r.Genres,
		Actors:   r.Actors,
		Director: r.Director,
	}
	if r.AgeLimit != nil {
		in.AgeLimit = *r.AgeLimit
	}
	if r.Rating != nil {
		in.Rating = *r.Rating
	}
	return in
}

type Creator interface {
	CreateMovie(ctx context.Context, in movie.MovieInput) (movie.Movie, error)
}

type Result struct {
	Created int
	Skipped int
}

type Option func(im *Importer)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(im *Importer) {
		if l != nil {
			im.logger = l
		}
	}
}

// Importer creates movies one by one through the catalog service, so
// seeded rows pass the same validation as API writes.
type Importer struct {
	movies Creator
	logger *zap.SugaredLogger
}

func NewImporter(movies Creator, opts ...Option) *Importer {
	im := &Importer{movies: movies, logger: logger.NOOPLogger}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import skips records rejected by validation and stops on any other error.
func (im *Importer) Import(ctx context.Context, records []Record) (Result, error) {
	var res Result
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		_, err := im.movies.CreateMovie(ctx, rec.Input())
		if errs.ErrorCode(err) == errs.EINVALID {
			res.Skipped++
			im.logger.Warnw("skipping invalid record",
				"index", i,
				"name", rec.Name,
				"fields", errs.ErrorFields(err),
			)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("record %d (%s): %w", i, rec.Name, err)
		}

		res.Created++
		if res.Created%100 == 0 {
			im.logger.Infow("import progress", "created", res.Created, "total", len(records))
		}
	}
	return res, nil
}
