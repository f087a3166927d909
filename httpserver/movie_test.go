// nolint: funlen
package httpserver_test

import (
	"net/http"
	"testing"

	"nettileffa/errs"
	"nettileffa/httpserver"
	"nettileffa/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListMovies(t *testing.T) {
	t.Run("passes an empty query through for defaults", func(t *testing.T) {
		// Arrange
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		page := movie.Page{Total: 1, Items: []movie.Movie{{
			ID: 1, Name: "Alien", Year: 1979, Genres: []string{"Horror"}, Actors: []movie.Person{},
		}}}
		svc.On("ListMovies", mock.Anything, movie.ListQuery{}).Return(page, nil).Once()

		// Act
		rec := doJSON(server, http.MethodGet, "/api/movies", nil)

		// Assert
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"total":1,"items":[{"id":1,"name":"Alien","year":1979,"age_limit":0,"rating":0,
			"synopsis":null,"genres":["Horror"],"actors":[],"director":null}]}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("maps every query parameter", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		expected := movie.ListQuery{Search: "alien", Sort: movie.SortYear, Order: movie.OrderDesc, Limit: 5, Offset: 10}
		svc.On("ListMovies", mock.Anything, expected).Return(movie.Page{Items: []movie.Movie{}}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/movies?search=alien&sort=year&order=desc&limit=5&offset=10", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		svc.AssertExpectations(t)
	})

	invalid := []struct {
		name  string
		query string
		field string
	}{
		{name: "non-integer limit", query: "limit=ten", field: "limit"},
		{name: "zero limit", query: "limit=0", field: "limit"},
		{name: "negative limit", query: "limit=-3", field: "limit"},
		{name: "negative offset", query: "offset=-1", field: "offset"},
		{name: "non-integer offset", query: "offset=1.5", field: "offset"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newMovieServer(t, svc)

			rec := doJSON(server, http.MethodGet, "/api/movies?"+tt.query, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeErrorResponse(t, rec)
			require.Len(t, resp.Fields, 1)
			assert.Equal(t, tt.field, resp.Fields[0].Field)
			svc.AssertNotCalled(t, "ListMovies", mock.Anything, mock.Anything)
		})
	}

	t.Run("returns 400 for an unknown sort key", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("ListMovies", mock.Anything, movie.ListQuery{Sort: "runtime"}).
			Return(movie.Page{}, movie.ErrInvalidSort).Once()

		rec := doJSON(server, http.MethodGet, "/api/movies?sort=runtime", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "sort", decodeErrorResponse(t, rec).Fields[0].Field)
	})

	t.Run("returns 503 when the store is unavailable", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("ListMovies", mock.Anything, mock.Anything).
			Return(movie.Page{}, errs.Errorf(errs.EUNAVAILABLE, "catalog database is unavailable")).Once()

		rec := doJSON(server, http.MethodGet, "/api/movies", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "100503", decodeErrorResponse(t, rec).Code)
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("returns the movie", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		m := movie.Movie{ID: 7, Name: "Heat", Year: 1995, Genres: []string{"Crime"}, Actors: []movie.Person{}}
		svc.On("GetMovie", mock.Anything, int64(7)).Return(m, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/movies/7", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var got movie.Movie
		decodeJSON(t, rec, &got)
		assert.Equal(t, m, got)
	})

	for _, id := range []string{"abc", "0", "-4", "1.5"} {
		t.Run("returns 404 for id "+id, func(t *testing.T) {
			svc := new(MockMovieService)
			server := newMovieServer(t, svc)

			rec := doJSON(server, http.MethodGet, "/api/movies/"+id, nil)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			svc.AssertNotCalled(t, "GetMovie", mock.Anything, mock.Anything)
		})
	}

	t.Run("returns 404 when the movie does not exist", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("GetMovie", mock.Anything, int64(99)).Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := doJSON(server, http.MethodGet, "/api/movies/99", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "100404", resp.Code)
		assert.Equal(t, "movie not found", resp.Message)
	})
}

func TestCreateMovie(t *testing.T) {
	t.Run("creates a movie and returns 201", func(t *testing.T) {
		// Arrange
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		req := validRequest()
		req.Name = "  Alien "
		req.Genres = []string{"Horror", "Horror", "Sci-Fi"}
		expected := movie.MovieInput{
			Name:     "Alien",
			Year:     1979,
			AgeLimit: 16,
			Rating:   5,
			Synopsis: strptr("In space no one can hear you scream."),
			Genres:   []string{"Horror", "Sci-Fi"},
			Actors:   []movie.Person{{FirstName: "Sigourney", LastName: "Weaver"}},
			Director: &movie.Person{FirstName: "Ridley", LastName: "Scott"},
		}
		created := movie.Movie{ID: 1, Name: "Alien", Genres: []string{"Horror", "Sci-Fi"}, Actors: []movie.Person{}}
		svc.On("CreateMovie", mock.Anything, expected).Return(created, nil).Once()

		// Act
		rec := doJSON(server, http.MethodPost, "/api/movies", req)

		// Assert
		require.Equal(t, http.StatusCreated, rec.Code)
		var got movie.Movie
		decodeJSON(t, rec, &got)
		assert.Equal(t, created, got)
		svc.AssertExpectations(t)
	})

	t.Run("accepts zero values that are present", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("CreateMovie", mock.Anything, mock.Anything).Return(movie.Movie{ID: 2}, nil).Once()

		rec := doJSON(server, http.MethodPost, "/api/movies",
			`{"name":"Short","year":1895,"age_limit":0,"rating":0,"genres":["Documentary"]}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("reports missing numeric fields once", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)

		rec := doJSON(server, http.MethodPost, "/api/movies", `{"name":"Alien","genres":["Horror"]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		assert.Equal(t, "100010", resp.Code)
		assert.Equal(t, []string{"year", "age_limit", "rating"}, fieldNames(resp))
		for _, f := range resp.Fields {
			assert.Equal(t, "is required", f.Reason)
		}
		svc.AssertNotCalled(t, "CreateMovie", mock.Anything, mock.Anything)
	})

	t.Run("reports every invalid field", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		req := validRequest()
		req.Name = " "
		req.Rating = intptr(9)
		req.Genres = nil
		req.Actors = []movie.Person{{FirstName: "", LastName: "Weaver"}}

		rec := doJSON(server, http.MethodPost, "/api/movies", req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"name", "rating", "genres", "actors[0].firstName"}, fieldNames(decodeErrorResponse(t, rec)))
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)

		rec := doJSON(server, http.MethodPost, "/api/movies", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid request body", decodeErrorResponse(t, rec).Message)
	})

	t.Run("rejects a wrongly typed field", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)

		rec := doJSON(server, http.MethodPost, "/api/movies", `{"name":"Alien","year":"1979"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("hides internal errors", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("CreateMovie", mock.Anything, mock.Anything).
			Return(movie.Movie{}, errs.Errorf(errs.EINTERNAL, "pq: duplicate key value")).Once()

		rec := doJSON(server, http.MethodPost, "/api/movies", validRequest())

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal server error", decodeErrorResponse(t, rec).Message)
		assert.NotContains(t, rec.Body.String(), "pq:")
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Run("replaces the movie", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		updated := movie.Movie{ID: 3, Name: "Alien", Genres: []string{"Horror"}, Actors: []movie.Person{}}
		svc.On("UpdateMovie", mock.Anything, int64(3), mock.AnythingOfType("movie.MovieInput")).Return(updated, nil).Once()

		rec := doJSON(server, http.MethodPut, "/api/movies/3", validRequest())

		require.Equal(t, http.StatusOK, rec.Code)
		var got movie.Movie
		decodeJSON(t, rec, &got)
		assert.Equal(t, updated, got)
		svc.AssertExpectations(t)
	})

	t.Run("returns 404 for an unknown movie", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("UpdateMovie", mock.Anything, int64(42), mock.Anything).Return(movie.Movie{}, movie.ErrMovieNotFound).Once()

		rec := doJSON(server, http.MethodPut, "/api/movies/42", validRequest())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("returns 404 before validating a bad id", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)

		rec := doJSON(server, http.MethodPut, "/api/movies/x", `{}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("validates the body", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		req := validRequest()
		req.Year = intptr(1800)

		rec := doJSON(server, http.MethodPut, "/api/movies/3", req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"year"}, fieldNames(decodeErrorResponse(t, rec)))
		svc.AssertNotCalled(t, "UpdateMovie", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListGenres(t *testing.T) {
	t.Run("returns genre names", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("ListGenres", mock.Anything).Return([]string{"Drama", "Horror"}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/genres", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["Drama","Horror"]`, rec.Body.String())
	})

	t.Run("returns an empty array rather than null", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("ListGenres", mock.Anything).Return([]string(nil), nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/genres", nil)

		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestSearchPeople(t *testing.T) {
	t.Run("searches actors", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("SearchActors", mock.Anything, "wea").
			Return([]movie.Person{{FirstName: "Sigourney", LastName: "Weaver"}}, nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/actors?search=wea", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"firstName":"Sigourney","lastName":"Weaver"}]`, rec.Body.String())
	})

	t.Run("searches directors without a query", func(t *testing.T) {
		svc := new(MockMovieService)
		server := newMovieServer(t, svc)
		svc.On("SearchDirectors", mock.Anything, "").Return([]movie.Person(nil), nil).Once()

		rec := doJSON(server, http.MethodGet, "/api/directors", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
		svc.AssertExpectations(t)
	})
}

func TestMovieRoutesWithoutService(t *testing.T) {
	server := httpserver.Default(testConfig())

	for _, path := range []string{"/api/movies", "/api/movies/1", "/api/genres", "/api/actors", "/api/directors"} {
		rec := doJSON(server, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotImplemented, rec.Code, path)
	}
}

func fieldNames(resp httpserver.ErrorResponse) []string {
	names := make([]string, len(resp.Fields))
	for i, f := range resp.Fields {
		names[i] = f.Field
	}
	return names
}
