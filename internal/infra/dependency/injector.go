// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"log/slog"
	"time"

	"github.com/life-index/backend/config"
	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/application/usecase/insight"
	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/infra/server/router"
	"github.com/life-index/backend/internal/integration/adapters"
	"github.com/life-index/backend/internal/integration/email"
	"github.com/life-index/backend/internal/integration/email/templates"
	"github.com/life-index/backend/internal/integration/entrypoint/controller"
	"github.com/life-index/backend/internal/integration/entrypoint/middleware"
)

// Services holds the external collaborators. Nil fields are built from the
// configuration.
type Services struct {
	TextGenerator adapter.TextGenerationService
	EmailSender   adapter.EmailSender
	Clock         adapter.Clock
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	Holder *lifeindex.StateHolder
	Router *router.Router

	GetDashboard  *lifeindex.GetDashboardUseCase
	GetCategory   *lifeindex.GetCategoryUseCase
	GetHistory    *lifeindex.GetHistoryUseCase
	UpdateMetrics *lifeindex.UpdateMetricsUseCase
	AddMetric     *lifeindex.AddMetricUseCase
	Insight       *insight.GenerateInsightUseCase
	EmailReport   *insight.EmailReportUseCase
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The state is loaded from store before it returns.
func NewInjector(ctx context.Context, cfg *config.Config, store adapter.StateStore, driver string, services Services) *Injector {
	generator := services.TextGenerator
	if generator == nil {
		generator = adapters.NewGeminiService(cfg.AI.APIKey, cfg.AI.Model)
	}

	sender := services.EmailSender
	if sender == nil && cfg.Email.ResendAPIKey != "" {
		client, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail, cfg.Email.BaseURL)
		if err != nil {
			slog.Error("Failed to create Resend client", "error", err)
		} else {
			sender = client
		}
	}

	var renderer insight.TemplateRenderer
	if r, err := templates.NewRenderer(); err != nil {
		slog.Error("Failed to load email templates", "error", err)
	} else {
		renderer = r
	}

	// Create state holder
	holder := lifeindex.NewStateHolder(ctx, store, services.Clock)

	// Create life index use cases
	getDashboardUseCase := lifeindex.NewGetDashboardUseCase(holder)
	getCategoryUseCase := lifeindex.NewGetCategoryUseCase(holder)
	getHistoryUseCase := lifeindex.NewGetHistoryUseCase(holder)
	updateMetricsUseCase := lifeindex.NewUpdateMetricsUseCase(holder)
	addMetricUseCase := lifeindex.NewAddMetricUseCase(holder)

	// Create insight use cases
	generateInsightUseCase := insight.NewGenerateInsightUseCase(holder, generator, cfg.AI.Temperature)
	emailReportUseCase := insight.NewEmailReportUseCase(holder, generateInsightUseCase, sender, renderer, cfg.Email.ReportRecipient, services.Clock)

	if !generateInsightUseCase.IsAvailable() {
		slog.Warn("Gemini API key not configured, insights return a fixed message")
	}
	if !emailReportUseCase.IsAvailable() {
		slog.Warn("Report email delivery not configured")
	}

	// Create controllers
	healthController := controller.NewHealthController(driver, holder.StoreHealthy)

	lifeIndexController := controller.NewLifeIndexController(
		getDashboardUseCase,
		getCategoryUseCase,
		getHistoryUseCase,
		updateMetricsUseCase,
		addMetricUseCase,
		generateInsightUseCase.IsAvailable,
	)

	insightController := controller.NewInsightController(
		generateInsightUseCase,
		emailReportUseCase,
	)

	// Create middleware
	insightRateLimiter := middleware.NewRateLimiterWithConfig(cfg.AI.RateLimit, 1*time.Minute)

	// Create router
	r := router.NewRouter(healthController, lifeIndexController, insightController, insightRateLimiter)

	return &Injector{
		Config:        cfg,
		Holder:        holder,
		Router:        r,
		GetDashboard:  getDashboardUseCase,
		GetCategory:   getCategoryUseCase,
		GetHistory:    getHistoryUseCase,
		UpdateMetrics: updateMetricsUseCase,
		AddMetric:     addMetricUseCase,
		Insight:       generateInsightUseCase,
		EmailReport:   emailReportUseCase,
	}
}
