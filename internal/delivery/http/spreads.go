package http

import (
	"net/http"
	"strconv"

	"spreadlab/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSpreads(base *echo.Group) {
	spreadGroup := base.Group("/spreads")
	spreadGroup.POST("", h.upsertSpread)
	spreadGroup.GET("", h.listSpreads)
	spreadGroup.GET("/:name", h.getSpread)
	spreadGroup.DELETE("/:name", h.deleteSpread)
	spreadGroup.GET("/:name/runs", h.listRuns)
}

func (h *HttpAPIHandler) upsertSpread(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.UpsertSpreadRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	resp, err := h.service.SpreadService.Upsert(ctx, *req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) listSpreads(c echo.Context) error {
	resp, err := h.service.SpreadService.List(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) getSpread(c echo.Context) error {
	resp, err := h.service.SpreadService.Get(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HttpAPIHandler) deleteSpread(c echo.Context) error {
	if err := h.service.SpreadService.Delete(c.Request().Context(), c.Param("name")); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *HttpAPIHandler) listRuns(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	resp, err := h.service.SpreadService.ListRuns(c.Request().Context(), c.Param("name"), limit)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
