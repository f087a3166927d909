package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres)
}

// handleListGenres godoc
// @Summary List Genres
// @Description Names of genres attached to at least one movie, ascending
// @Tags genres
// @Produce json
// @Success 200 {array} string
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	if s.MovieService == nil {
		return errMovieServiceMissing
	}

	genres, err := s.MovieService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}
	if genres == nil {
		genres = []string{}
	}

	return c.JSON(http.StatusOK, genres)
}
