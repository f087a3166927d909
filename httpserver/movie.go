package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"nettileffa/errs"
	"nettileffa/movie"

	"github.com/labstack/echo/v4"
)

var errMovieServiceMissing = errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)
	g.POST("/movies", s.handleCreateMovie)
	g.PUT("/movies/:id", s.handleUpdateMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Filter by name or synopsis, sort and paginate movies
// @Tags movies
// @Produce json
// @Param search query string false "Case-insensitive substring of name or synopsis"
// @Param sort query string false "year, rating or name (default name)"
// @Param order query string false "asc or desc (default asc)"
// @Param limit query int false "Page size (1-100), default 20"
// @Param offset query int false "Items to skip, default 0"
// @Success 200 {object} movie.Page
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	q, err := parseListQuery(c)
	if err != nil {
		return err
	}

	page, err := s.MovieService.ListMovies(c.Request().Context(), q)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 404 {object} ErrorResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie"
// @Success 201 {object} movie.Movie
// @Failure 400 {object} ErrorResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	in, err := bindMovieInput(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, m)
}

// handleUpdateMovie godoc
// @Summary Replace Movie
// @Description Replaces every field and association of a movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	id, err := movieID(c)
	if err != nil {
		return err
	}

	in, err := bindMovieInput(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovie(c.Request().Context(), id, in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

func bindMovieInput(c echo.Context) (movie.MovieInput, error) {
	var req MovieRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &req); err != nil {
		return movie.MovieInput{}, errInvalidBody
	}

	in := req.ToInput().Normalize()
	if err := joinInvalid(c.Validate(req), in.Validate()); err != nil {
		return movie.MovieInput{}, err
	}
	return in, nil
}

// movieID treats anything that is not a positive integer as an unknown id.
func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, movie.ErrMovieNotFound
	}
	return id, nil
}

func parseListQuery(c echo.Context) (movie.ListQuery, error) {
	q := movie.ListQuery{
		Search: c.QueryParam("search"),
		Sort:   movie.SortKey(strings.TrimSpace(c.QueryParam("sort"))),
		Order:  movie.SortOrder(strings.TrimSpace(c.QueryParam("order"))),
	}

	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return q, movie.ErrInvalidLimit
		}
		q.Limit = limit
	}

	if raw := strings.TrimSpace(c.QueryParam("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return q, movie.ErrInvalidOffset
		}
		q.Offset = offset
	}

	return q, nil
}
