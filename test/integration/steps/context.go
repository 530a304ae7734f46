// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/life-index/backend/config"
	"github.com/life-index/backend/internal/application/adapter"
	"github.com/life-index/backend/internal/infra/dependency"
	"github.com/life-index/backend/internal/integration/persistence"
	"github.com/life-index/backend/internal/integration/persistence/model"
	"github.com/life-index/backend/test/integration/mock"
)

const (
	emailMethod = "POST"
	emailPath   = "/emails"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Application
	cfg       *config.Config
	driver    string
	injector  *dependency.Injector
	generator *stubGenerator
	clock     *mock.Time
}

var (
	suiteDB    *mock.Db
	suiteRedis *redis.Client
	emailAPI   *mock.ApiMock
	suiteOnce  sync.Once
)

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(setupSuite)
}

func setupSuite() {
	suiteOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		suiteDB = mock.NewDb(map[string]any{
			"state_snapshots": &model.StateSnapshotModel{},
		})
		suiteRedis = mock.NewRedis()
		emailAPI = mock.NewApiServer()
		emailAPI.Start()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		setupSuite()

		if err := suiteDB.ClearDB(); err != nil {
			return ctx, fmt.Errorf("failed to clear database: %w", err)
		}
		if err := mock.ClearRedis(suiteRedis); err != nil {
			return ctx, fmt.Errorf("failed to clear redis: %w", err)
		}
		emailAPI.ClearResponses(emailMethod, emailPath)
		emailAPI.SetResponse(-1, emailMethod, emailPath, http.StatusOK, map[string]any{"id": "msg_integration"})

		cfg := config.Load()
		cfg.AI.APIKey = ""
		cfg.AI.RateLimit = 5
		cfg.Email.ResendAPIKey = "re_integration"
		cfg.Email.BaseURL = emailAPI.GetUrl()
		cfg.Email.ReportRecipient = "me@example.com"

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			cfg:            cfg,
			driver:         config.DriverSQLite,
			generator:      &stubGenerator{},
			clock:          mock.NewTime(),
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc := GetTestContext(ctx); tc != nil {
			tc.stopServer()
		}
		return ctx, nil
	})

	registerSetupSteps(ctx)
	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerStoreSteps(ctx)
	registerEmailSteps(ctx)
}

// registerSetupSteps registers steps that shape the application before it starts.
func registerSetupSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^the API server restarts$`, theAPIServerRestarts)
	ctx.Step(`^the state store is "([^"]*)"$`, theStateStoreIs)
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^the insight generator responds with "([^"]*)"$`, theInsightGeneratorRespondsWith)
	ctx.Step(`^the insight generator fails with "([^"]*)"$`, theInsightGeneratorFailsWith)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I send (\d+) "([^"]*)" requests to "([^"]*)"$`, iSendRequestsTo)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, theResponseHeaderShouldContain)
}

// registerStoreSteps registers persistence steps.
func registerStoreSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the stored state has (\d+) history points$`, theStoredStateHasHistoryPoints)
	ctx.Step(`^the stored state is corrupted$`, theStoredStateIsCorrupted)
	ctx.Step(`^the stored state should have (\d+) history points$`, theStoredStateShouldHaveHistoryPoints)
	ctx.Step(`^the stored "([^"]*)" score should be "([^"]*)"$`, theStoredScoreShouldBe)
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
}

// registerEmailSteps registers email provider steps.
func registerEmailSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the email provider fails with status (\d+)$`, theEmailProviderFailsWithStatus)
	ctx.Step(`^the email provider should have received (\d+) emails?$`, theEmailProviderShouldHaveReceived)
	ctx.Step(`^the email provider request field "([^"]*)" should be "([^"]*)"$`, theEmailProviderRequestFieldShouldBe)
	ctx.Step(`^the email provider request header "([^"]*)" should be "([^"]*)"$`, theEmailProviderRequestHeaderShouldBe)
}

func (tc *TestContext) store() adapter.StateStore {
	if tc.driver == config.DriverRedis {
		return persistence.NewRedisStateStore(suiteRedis, persistence.DefaultStateKey)
	}
	return persistence.NewGormStateStore(suiteDB.DbConn, persistence.DefaultStateKey)
}

// ensureServer wires the application on first use so that setup steps can
// seed the store before the state is loaded.
func (tc *TestContext) ensureServer() {
	if tc.server != nil {
		return
	}
	tc.injector = dependency.NewInjector(context.Background(), tc.cfg, tc.store(), tc.driver, dependency.Services{
		TextGenerator: tc.generator,
		Clock:         tc.clock,
	})
	tc.server = httptest.NewServer(tc.injector.Router.Setup("test"))
}

func (tc *TestContext) stopServer() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
}

// stubGenerator stands in for the Gemini client.
type stubGenerator struct {
	available bool
	text      string
	err       error
}

func (g *stubGenerator) Generate(ctx context.Context, request *adapter.TextGenerationRequest) (string, error) {
	if !g.available {
		return "", errors.New("generator not configured")
	}
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *stubGenerator) IsAvailable() bool {
	return g.available
}
