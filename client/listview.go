package client

import (
	"context"
	"errors"
	"sync"

	"nettileffa/movie"
)

// ErrStale is returned for a response that was overtaken by a newer query.
var ErrStale = errors.New("stale response discarded")

// Lister is the read side a ListView pulls pages from.
type Lister interface {
	ListMovies(ctx context.Context, q movie.ListQuery) (movie.Page, error)
}

// ListView holds the query of a movie list screen. Every change bumps a
// generation; only the response of the latest generation is kept, so late
// answers to older queries never overwrite newer ones.
type ListView struct {
	source Lister

	mu         sync.Mutex
	query      movie.ListQuery
	generation uint64
	page       movie.Page
}

func NewListView(source Lister) *ListView {
	return &ListView{source: source, query: movie.ListQuery{}.Normalize()}
}

func (v *ListView) Query() movie.ListQuery {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Page returns the last accepted page.
func (v *ListView) Page() movie.Page {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// SetSearch changes the search text and goes back to the first page.
func (v *ListView) SetSearch(ctx context.Context, search string) (movie.Page, error) {
	return v.update(ctx, func(q *movie.ListQuery) {
		q.Search = search
		q.Offset = 0
	})
}

// SetSort changes the ordering and goes back to the first page.
func (v *ListView) SetSort(ctx context.Context, key movie.SortKey, order movie.SortOrder) (movie.Page, error) {
	return v.update(ctx, func(q *movie.ListQuery) {
		q.Sort = key
		q.Order = order
		q.Offset = 0
	})
}

func (v *ListView) SetPage(ctx context.Context, limit, offset int) (movie.Page, error) {
	return v.update(ctx, func(q *movie.ListQuery) {
		q.Limit = limit
		q.Offset = offset
	})
}

// Refresh fetches the current query again.
func (v *ListView) Refresh(ctx context.Context) (movie.Page, error) {
	return v.update(ctx, func(*movie.ListQuery) {})
}

func (v *ListView) update(ctx context.Context, change func(q *movie.ListQuery)) (movie.Page, error) {
	v.mu.Lock()
	q := v.query
	change(&q)
	q = q.Normalize()
	if err := q.Validate(); err != nil {
		v.mu.Unlock()
		return movie.Page{}, err
	}
	v.query = q
	v.generation++
	generation := v.generation
	v.mu.Unlock()

	page, err := v.source.ListMovies(ctx, q)

	v.mu.Lock()
	defer v.mu.Unlock()
	if generation != v.generation {
		return movie.Page{}, ErrStale
	}
	if err != nil {
		return movie.Page{}, err
	}
	v.page = page
	return page, nil
}
