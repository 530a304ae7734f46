// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/life-index/backend/internal/application/usecase/insight"
	domainerror "github.com/life-index/backend/internal/domain/error"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
)

// InsightController handles AI report endpoints.
type InsightController struct {
	generateUseCase *insight.GenerateInsightUseCase
	emailUseCase    *insight.EmailReportUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(
	generateUseCase *insight.GenerateInsightUseCase,
	emailUseCase *insight.EmailReportUseCase,
) *InsightController {
	return &InsightController{
		generateUseCase: generateUseCase,
		emailUseCase:    emailUseCase,
	}
}

// Generate handles POST /insights requests. It always answers 200: every
// failure is reported through the fixed analysis text.
func (c *InsightController) Generate(ctx *gin.Context) {
	output := c.generateUseCase.Execute(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.ToInsightResponse(output))
}

// Email handles POST /insights/email requests.
func (c *InsightController) Email(ctx *gin.Context) {
	var req dto.EmailReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidInsightBody),
			Details: err.Error(),
		})
		return
	}

	output, err := c.emailUseCase.Execute(ctx.Request.Context(), insight.EmailReportInput{To: req.To})
	if err != nil {
		c.handleEmailError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEmailReportResponse(output))
}

// handleEmailError maps email errors to HTTP responses.
func (c *InsightController) handleEmailError(ctx *gin.Context, err error) {
	var emailErr *domainerror.EmailError
	if errors.As(err, &emailErr) {
		ctx.JSON(c.getStatusCodeForEmailError(emailErr.Code), dto.ErrorResponse{
			Error: emailErr.Message,
			Code:  string(emailErr.Code),
		})
		return
	}

	slog.Error("Unexpected report email error", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForEmailError maps email error codes to HTTP status codes.
func (c *InsightController) getStatusCodeForEmailError(code domainerror.EmailErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailNotConfigured:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeMissingRecipient:
		return http.StatusBadRequest
	case domainerror.ErrCodeTemporaryEmailFailure, domainerror.ErrCodePermanentEmailFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
