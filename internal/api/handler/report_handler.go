package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contesthub/backend/internal/core/ports"
)

type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Popular returns the most-entered accepted contests.
//
// @Summary      List popular contests
// @Tags         reports
// @Produce      json
// @Success      200  {array}  domain.Contest
// @Router       /popular-contests [get]
func (h *ReportHandler) Popular(c echo.Context) error {
	contests, err := h.reports.Popular(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contests)
}

// BestCreators ranks creators by total participation across accepted contests.
//
// @Summary      List best creators
// @Tags         reports
// @Produce      json
// @Success      200  {array}  ports.BestCreator
// @Router       /creators/best [get]
func (h *ReportHandler) BestCreators(c echo.Context) error {
	creators, err := h.reports.BestCreators(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, creators)
}

// Stats returns the aggregate admin dashboard counters.
//
// @Summary      Admin statistics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AdminStats
// @Failure      403  {object}  map[string]string
// @Router       /admin-stats [get]
func (h *ReportHandler) Stats(c echo.Context) error {
	stats, err := h.reports.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
