package http

import (
	"context"
	"errors"
	"net/http"

	"spreadlab/internal/quant"
	"spreadlab/internal/repository"
	"spreadlab/internal/service"
	"spreadlab/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.GET("/health", h.health)

	base := h.echo.Group("/api", middleware.NewRateLimiterMiddleware())
	h.SetupSpreads(base)
	h.SetupAnalysis(base)
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorJSON maps service errors onto HTTP statuses: bad inputs are the
// caller's to fix, never retried here.
func errorJSON(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "spread not found"})
	case errors.Is(err, quant.ErrInsufficientData),
		errors.Is(err, service.ErrSeriesInput),
		errors.Is(err, service.ErrNonIncreasingTimestamps),
		errors.Is(err, service.ErrDegenerateBand):
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
