package http

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-dashboard-service/internal/http/middleware"
	"fleet-dashboard-service/internal/model"
	"fleet-dashboard-service/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"

	selectDatePrompt = "請選擇日期"
)

type Handler struct {
	dashboard *service.DashboardService
	log       zerolog.Logger
}

func NewHandler(dashboard *service.DashboardService, log zerolog.Logger) *Handler {
	return &Handler{dashboard: dashboard, log: log}
}

func (h *Handler) Register(r *gin.Engine) {
	group := r.Group("/dashboard")

	group.GET("/dates", h.listDates)
	group.POST("/query", h.queryDashboard)
	group.POST("/detail", h.openDetail)
	group.POST("/detail/close", h.closeDetail)
	group.GET("/modal", h.getModal)
	group.GET("/export/xlsx", h.exportXLSX)
	group.GET("/export/pdf", h.exportPDF)
}

type queryRequest struct {
	Date string `json:"date"`
}

type detailRequest struct {
	SeriesIndex *int `json:"series_index"`
	Hour        *int `json:"hour"`
}

func (h *Handler) listDates(c *gin.Context) {
	options, err := h.dashboard.DateOptions(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(options))
}

func (h *Handler) queryDashboard(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("missing session"))
		return
	}

	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if strings.TrimSpace(req.Date) == "" {
		h.dashboard.ClearDashboard(sessionID)
		c.JSON(http.StatusBadRequest, gin.H{"error": selectDatePrompt, "prompt": true})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date"))
		return
	}

	result, err := h.dashboard.QueryDashboard(c.Request.Context(), model.DashboardQuery{
		SessionID: sessionID,
		Date:      date,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) openDetail(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("missing session"))
		return
	}

	var req detailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("series_index and hour must be integers"))
		return
	}
	if req.SeriesIndex == nil || req.Hour == nil {
		c.JSON(http.StatusBadRequest, errorResponse("series_index and hour are required"))
		return
	}

	modal, err := h.dashboard.OpenDetail(model.DetailCommand{
		SessionID:   sessionID,
		SeriesIndex: *req.SeriesIndex,
		Hour:        *req.Hour,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(modal))
}

func (h *Handler) closeDetail(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("missing session"))
		return
	}

	c.JSON(http.StatusOK, successResponse(h.dashboard.CloseDetail(sessionID)))
}

func (h *Handler) getModal(c *gin.Context) {
	sessionID, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse("missing session"))
		return
	}

	c.JSON(http.StatusOK, successResponse(h.dashboard.Modal(sessionID)))
}

func (h *Handler) exportXLSX(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date"))
		return
	}

	result, err := h.dashboard.ExportXLSX(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, xlsxContentType, result.Content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date"))
		return
	}

	result, err := h.dashboard.ExportPDF(c.Request.Context(), date)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, pdfContentType, result.Content)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotQueried):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrExportUnavailable):
		c.JSON(http.StatusNotImplemented, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		model.DateLayout,
		"2006/01/02",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return model.DateOnly(parsed), nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
