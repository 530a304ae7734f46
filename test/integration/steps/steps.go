package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/life-index/backend/config"
	"github.com/life-index/backend/internal/domain/entity"
	"github.com/life-index/backend/internal/integration/persistence"
	"github.com/life-index/backend/internal/integration/persistence/model"
	"github.com/life-index/backend/test/integration/mock"
)

func testContext(ctx context.Context) (*TestContext, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return nil, fmt.Errorf("test context not found")
	}
	return tc, nil
}

// Setup steps

func theAPIServerIsRunning(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.ensureServer()
	return nil
}

func theAPIServerRestarts(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.stopServer()
	tc.ensureServer()
	return nil
}

func theStateStoreIs(ctx context.Context, driver string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.server != nil {
		return fmt.Errorf("state store must be chosen before the server starts")
	}
	switch driver {
	case config.DriverSQLite:
		tc.driver = driver
		return nil
	case config.DriverRedis:
		tc.driver = driver
		tc.cfg.Redis.URL = "redis://" + mock.RedisAddr() + "/0"
		return nil
	default:
		return fmt.Errorf("unsupported test store %q", driver)
	}
}

func theCurrentTimeIs(ctx context.Context, raw string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	now, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", raw, err)
	}
	tc.clock.SetCurrentTime(now)
	return nil
}

func theInsightGeneratorRespondsWith(ctx context.Context, text string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.generator.available = true
	tc.generator.text = text
	tc.generator.err = nil
	return nil
}

func theInsightGeneratorFailsWith(ctx context.Context, message string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.generator.available = true
	tc.generator.err = errors.New(message)
	return nil
}

// Request steps

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.executeRequest(method, endpoint, []byte(body.Content))
}

func iSendRequestsTo(ctx context.Context, count int, method, endpoint string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := tc.executeRequest(method, endpoint, nil); err != nil {
			return err
		}
	}
	return nil
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	tc.requestHeaders[header] = value
	return nil
}

func (tc *TestContext) executeRequest(method, endpoint string, payload []byte) error {
	tc.ensureServer()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}
	if actual := formatValue(value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	_, err := responseField(ctx, field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expected int) error {
	value, err := responseField(ctx, field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != expected {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expected, len(items))
	}
	return nil
}

func theResponseHeaderShouldContain(ctx context.Context, header, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if actual := tc.response.Header.Get(header); !strings.Contains(actual, expected) {
		return fmt.Errorf("header '%s' expected to contain '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func responseField(ctx context.Context, field string) (any, error) {
	tc, err := testContext(ctx)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	value, ok := getFieldValue(data, field)
	if !ok {
		return nil, fmt.Errorf("field '%s' not found in response. Body: %s", field, string(tc.responseBody))
	}
	return value, nil
}

// getFieldValue walks a decoded JSON document along a dot separated path.
// Numeric segments index into lists.
func getFieldValue(object any, dotSeparatedField string) (any, bool) {
	current := object
	for _, part := range strings.Split(dotSeparatedField, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Store steps

func theStoredStateHasHistoryPoints(ctx context.Context, count int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	start := tc.clock.Now().Add(-time.Duration(count) * time.Hour)
	state, _ := entity.NewDefaultLifeState(start).Reconcile()
	for i := 0; i < count; i++ {
		state.History = append(state.History, entity.HistoryPoint{
			Date:       start.Add(time.Duration(i) * time.Hour),
			TotalScore: float64(i),
			Assets:     float64(i),
		})
	}
	// Bypass the store so the untrimmed history is what the server loads.
	payload, err := json.Marshal(model.LifeStateFromEntity(state))
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	return tc.writeRawSnapshot(string(payload))
}

func theStoredStateIsCorrupted(ctx context.Context) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	return tc.writeRawSnapshot("{not json")
}

func (tc *TestContext) writeRawSnapshot(payload string) error {
	if tc.driver == config.DriverRedis {
		return suiteRedis.Set(context.Background(), persistence.DefaultStateKey, payload, 0).Err()
	}
	return suiteDB.DbConn.Create(&model.StateSnapshotModel{
		Key:       persistence.DefaultStateKey,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func theStoredStateShouldHaveHistoryPoints(ctx context.Context, expected int) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	state, err := tc.store().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load stored state: %w", err)
	}
	if len(state.History) != expected {
		return fmt.Errorf("expected %d stored history points, got %d", expected, len(state.History))
	}
	return nil
}

func theStoredScoreShouldBe(ctx context.Context, category, expected string) error {
	tc, err := testContext(ctx)
	if err != nil {
		return err
	}
	id, err := entity.ParseCategoryID(category)
	if err != nil {
		return err
	}
	state, err := tc.store().Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load stored state: %w", err)
	}
	if actual := formatValue(state.Categories.Get(id).Score); actual != expected {
		return fmt.Errorf("stored %s score expected '%s', got '%s'", category, expected, actual)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	object, ok := suiteDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table %s not found", table)
	}
	var count int64
	if err := suiteDB.DbConn.Model(object).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if int(count) != quantity {
		return fmt.Errorf("expected %d objects in %s, got %d", quantity, table, count)
	}
	return nil
}

// Email provider steps

func theEmailProviderFailsWithStatus(ctx context.Context, status int) error {
	emailAPI.SetResponse(-1, emailMethod, emailPath, status, map[string]any{
		"statusCode": status,
		"name":       "application_error",
		"message":    "provider failure",
	})
	return nil
}

func theEmailProviderShouldHaveReceived(ctx context.Context, expected int) error {
	received := emailAPI.RequestCount(emailMethod, emailPath)
	if received != expected {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", expected, received)
	}
	return nil
}

func theEmailProviderRequestFieldShouldBe(ctx context.Context, field, expected string) error {
	body := emailAPI.GetRequestBody(emailMethod, emailPath, 0)
	if body == nil {
		return fmt.Errorf("no email request received")
	}
	value, ok := getFieldValue(body, field)
	if !ok {
		return fmt.Errorf("field '%s' not found in email request", field)
	}
	if actual := formatValue(value); actual != expected {
		return fmt.Errorf("email field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theEmailProviderRequestHeaderShouldBe(ctx context.Context, header, expected string) error {
	headers := emailAPI.GetRequestHeaders(emailMethod, emailPath, 0)
	if headers == nil {
		return fmt.Errorf("no email request received")
	}
	if actual := headers[http.CanonicalHeaderKey(header)]; actual != expected {
		return fmt.Errorf("email header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}
