package httpserver

import (
	"context"
	"net/http"

	"nettileffa/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPersonRoutes(g *echo.Group) {
	g.GET("/actors", s.handleSearchActors)
	g.GET("/directors", s.handleSearchDirectors)
}

// handleSearchActors godoc
// @Summary Search Actors
// @Description Autocomplete for people who acted in at least one movie
// @Tags people
// @Produce json
// @Param search query string false "Case-insensitive substring of the name"
// @Success 200 {array} movie.Person
// @Router /api/actors [get]
func (s *Server) handleSearchActors(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}
	return s.respondPeople(c, s.MovieService.SearchActors)
}

// handleSearchDirectors godoc
// @Summary Search Directors
// @Tags people
// @Produce json
// @Param search query string false "Case-insensitive substring of the name"
// @Success 200 {array} movie.Person
// @Router /api/directors [get]
func (s *Server) handleSearchDirectors(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}
	return s.respondPeople(c, s.MovieService.SearchDirectors)
}

func (s *Server) respondPeople(c echo.Context, search func(context.Context, string) ([]movie.Person, error)) error {
	people, err := search(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}
	if people == nil {
		people = []movie.Person{}
	}
	return c.JSON(http.StatusOK, people)
}
