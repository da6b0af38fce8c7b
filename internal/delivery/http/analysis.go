package http

import (
	"net/http"

	"spreadlab/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAnalysis(base *echo.Group) {
	base.POST("/estimate", h.estimate)
	base.POST("/signal", h.signal)

	backtestGroup := base.Group("/backtest")
	backtestGroup.POST("", h.runBacktest)
	backtestGroup.POST("/sweep", h.runSweep)
}

func (h *HttpAPIHandler) estimate(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.EstimateRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	resp, err := h.service.AnalysisService.Estimate(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) signal(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SignalRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	resp, err := h.service.AnalysisService.Signal(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) runBacktest(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.BacktestRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	resp, err := h.service.AnalysisService.Run(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) runSweep(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.SweepRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	resp, err := h.service.AnalysisService.Sweep(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
