// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/chart"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

// LifeIndexController handles life index endpoints.
type LifeIndexController struct {
	dashboardUseCase *lifeindex.GetDashboardUseCase
	categoryUseCase  *lifeindex.GetCategoryUseCase
	historyUseCase   *lifeindex.GetHistoryUseCase
	updateUseCase    *lifeindex.UpdateMetricsUseCase
	addMetricUseCase *lifeindex.AddMetricUseCase
	aiAvailable      func() bool
}

// NewLifeIndexController creates a new life index controller instance.
func NewLifeIndexController(
	dashboardUseCase *lifeindex.GetDashboardUseCase,
	categoryUseCase *lifeindex.GetCategoryUseCase,
	historyUseCase *lifeindex.GetHistoryUseCase,
	updateUseCase *lifeindex.UpdateMetricsUseCase,
	addMetricUseCase *lifeindex.AddMetricUseCase,
	aiAvailable func() bool,
) *LifeIndexController {
	return &LifeIndexController{
		dashboardUseCase: dashboardUseCase,
		categoryUseCase:  categoryUseCase,
		historyUseCase:   historyUseCase,
		updateUseCase:    updateUseCase,
		addMetricUseCase: addMetricUseCase,
		aiAvailable:      aiAvailable,
	}
}

// Get handles GET /life-index requests.
func (c *LifeIndexController) Get(ctx *gin.Context) {
	output, err := c.dashboardUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	available := c.aiAvailable != nil && c.aiAvailable()
	ctx.JSON(http.StatusOK, dto.ToLifeIndexResponse(output, available))
}

// GetCategory handles GET /life-index/categories/:id requests.
func (c *LifeIndexController) GetCategory(ctx *gin.Context) {
	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), lifeindex.GetCategoryInput{
		CategoryID: ctx.Param("id"),
	})
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// UpdateMetrics handles PUT /life-index/categories/:id/metrics requests.
func (c *LifeIndexController) UpdateMetrics(ctx *gin.Context) {
	var req dto.UpdateMetricsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidMetrics),
			Details: err.Error(),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), lifeindex.UpdateMetricsInput{
		CategoryID: ctx.Param("id"),
		Metrics:    req.ToMetricInputs(),
	})
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUpdateMetricsResponse(output))
}

// AddMetric handles POST /life-index/categories/:id/metrics requests.
func (c *LifeIndexController) AddMetric(ctx *gin.Context) {
	var req dto.AddMetricRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidMetrics),
			Details: err.Error(),
		})
		return
	}

	output, err := c.addMetricUseCase.Execute(ctx.Request.Context(), lifeindex.AddMetricInput{
		CategoryID: ctx.Param("id"),
		Name:       req.Name,
		Value:      req.Value,
		Target:     req.Target,
		Unit:       req.Unit,
		Type:       req.Type,
	})
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUpdateMetricsResponse(output))
}

// History handles GET /life-index/history requests.
func (c *LifeIndexController) History(ctx *gin.Context) {
	output, err := c.historyUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHistoryResponse(output))
}

// HistoryChart handles GET /life-index/history/chart requests.
func (c *LifeIndexController) HistoryChart(ctx *gin.Context) {
	output, err := c.historyUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleLifeIndexError(ctx, err)
		return
	}

	var buf bytes.Buffer
	if err := chart.RenderHistory(&buf, output); err != nil {
		slog.Error("Failed to render history chart", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to render chart",
			Code:  string(domainerror.ErrCodeLifeIndexInternalError),
		})
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleLifeIndexError maps life index errors to HTTP responses.
func (c *LifeIndexController) handleLifeIndexError(ctx *gin.Context, err error) {
	var lixErr *domainerror.LifeIndexError
	if errors.As(err, &lixErr) {
		ctx.JSON(c.getStatusCodeForLifeIndexError(lixErr.Code), dto.ErrorResponse{
			Error: lixErr.Message,
			Code:  string(lixErr.Code),
		})
		return
	}

	slog.Error("Unexpected life index error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
		Code:  string(domainerror.ErrCodeLifeIndexInternalError),
	})
}

// getStatusCodeForLifeIndexError maps life index error codes to HTTP status codes.
func (c *LifeIndexController) getStatusCodeForLifeIndexError(code domainerror.LifeIndexErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnknownCategory,
		domainerror.ErrCodeInvalidMetrics,
		domainerror.ErrCodeInvalidMetricType:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
