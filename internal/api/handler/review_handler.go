package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinecritic/review-system/internal/api/metrics"
	"github.com/cinecritic/review-system/internal/api/middleware"
	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/ports"
)

// ReviewHandler handles the review ledger endpoints. The router admits only
// critics to the movie-scoped create/update routes and only critics and
// admins to the listing.
type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// List handles GET /reviews/ — everything for admins, own reviews for critics.
//
// @Summary      List reviews
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   reviewResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /reviews/ [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.reviews.List(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// Create handles POST /movies/:id/review/.
//
// @Summary      Review a movie
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Movie id"
// @Param        body  body      reviewRequest  true  "Review details"
// @Success      201   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  map[string]string
// @Router       /movies/{id}/review/ [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		return err
	}

	review, err := h.reviews.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrReviewExists) {
			metrics.ReviewConflictsTotal.Inc()
		}
		return err
	}

	metrics.ReviewsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// Update handles PUT /movies/:id/review/ — replaces the caller's review of
// the movie. No review and no movie look the same from here: 404 either way.
//
// @Summary      Update own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Movie id"
// @Param        body  body      reviewRequest  true  "Review details"
// @Success      200   {object}  reviewResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id}/review/ [put]
func (h *ReviewHandler) Update(c echo.Context) error {
	input, err := h.bindInput(c)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return domain.ErrReviewNotFound
		}
		return err
	}

	review, err := h.reviews.Update(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toReviewResponse(review))
}

// bindInput builds the command from path, body, and the authenticated
// identity. The critic is always the caller; the body cannot name one.
func (h *ReviewHandler) bindInput(c echo.Context) (ports.ReviewInput, error) {
	id, err := movieID(c)
	if err != nil {
		return ports.ReviewInput{}, err
	}

	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return ports.ReviewInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.ReviewInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return ports.ReviewInput{
		CriticID: middleware.Identity(c).UserID,
		MovieID:  id,
		Stars:    req.Stars,
		Review:   req.Review,
		Spoilers: *req.Spoilers,
	}, nil
}
