package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nettileffa/httpserver"
	"nettileffa/movie"
	"nettileffa/pkg/config"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{AppEnv: "local"}
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context, q movie.ListQuery) (movie.Page, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(movie.Page), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, in movie.MovieInput) (movie.Movie, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int64, in movie.MovieInput) (movie.Movie, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) ListGenres(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMovieService) SearchActors(ctx context.Context, query string) ([]movie.Person, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Person), args.Error(1)
}

func (m *MockMovieService) SearchDirectors(ctx context.Context, query string) ([]movie.Person, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]movie.Person), args.Error(1)
}

func newMovieServer(t *testing.T, svc movie.Service) *httpserver.Server {
	t.Helper()
	server, err := httpserver.New(
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(svc),
	)
	require.NoError(t, err)
	return server
}

func doJSON(server *httpserver.Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) httpserver.ErrorResponse {
	t.Helper()
	var resp httpserver.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func intptr(v int) *int { return &v }

func strptr(s string) *string { return &s }

func validRequest() httpserver.MovieRequest {
	return httpserver.MovieRequest{
		Name:     "Alien",
		Year:     intptr(1979),
		AgeLimit: intptr(16),
		Rating:   intptr(5),
		Synopsis: strptr("In space no one can hear you scream."),
		Genres:   []string{"Horror", "Sci-Fi"},
		Actors:   []movie.Person{{FirstName: "Sigourney", LastName: "Weaver"}},
		Director: &movie.Person{FirstName: "Ridley", LastName: "Scott"},
	}
}
