package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/api/metrics"
	"github.com/cinecritic/review-system/internal/api/middleware"
	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// MovieHandler handles catalog requests. Reads are open to everyone; the
// router gates writes behind the admin role.
type MovieHandler struct {
	movies  ports.MovieService
	reviews ports.ReviewService
}

func NewMovieHandler(movies ports.MovieService, reviews ports.ReviewService) *MovieHandler {
	return &MovieHandler{movies: movies, reviews: reviews}
}

// List handles GET /movies/ with an optional title substring filter.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        title  query     string  false  "Case-insensitive title substring"
// @Success      200    {array}   movieResponse
// @Router       /movies/ [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.movies.List(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return err
	}

	identity := middleware.Identity(c)
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		reviews, err := h.embeddedReviews(c, identity, m.ID)
		if err != nil {
			return err
		}
		out = append(out, toMovieResponse(m, reviews))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /movies/:id/.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id  path      int  true  "Movie id"
// @Success      200  {object}  movieResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id}/ [get]
func (h *MovieHandler) Get(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	movie, err := h.movies.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	reviews, err := h.embeddedReviews(c, middleware.Identity(c), movie.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie, reviews))
}

// Create handles POST /movies/.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      201   {object}  movieResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /movies/ [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "malformed payload")
	}
	if err := validGenreShape(req.Genres); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	movie, err := h.movies.Create(c.Request().Context(), toMovieInput(req))
	if err != nil {
		return err
	}

	metrics.MoviesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toMovieResponse(movie, nil))
}

// Update handles PUT /movies/:id/.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Movie id"
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id}/ [put]
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	var req movieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	movie, err := h.movies.Update(c.Request().Context(), id, toMovieInput(req))
	if err != nil {
		return err
	}

	reviews, err := h.embeddedReviews(c, middleware.Identity(c), movie.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie, reviews))
}

// Delete handles DELETE /movies/:id/. Reviews of the movie go with it.
//
// @Summary      Delete a movie
// @Tags         movies
// @Security     BearerAuth
// @Param        id  path  int  true  "Movie id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id}/ [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := h.movies.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// embeddedReviews returns the movie's reviews for authenticated callers and
// nil for anonymous ones, so the reviews key disappears from their payloads.
func (h *MovieHandler) embeddedReviews(c echo.Context, identity domain.Identity, movieID int64) (*[]reviewResponse, error) {
	if !identity.Authenticated() {
		return nil, nil
	}
	reviews, err := h.reviews.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return nil, err
	}
	out := toReviewResponses(reviews)
	return &out, nil
}

// movieID parses the :id path segment. A non-numeric id is indistinguishable
// from a missing movie to callers.
func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrMovieNotFound
	}
	return id, nil
}

// validGenreShape rejects genre items without a name. Shape problems in the
// genres array are a semantic 422, unlike plain field validation.
func validGenreShape(genres []genreRequest) error {
	for _, g := range genres {
		if g.Name == "" {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "genre name is required")
		}
	}
	return nil
}
