package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/life-index/backend/internal/application/usecase/lifeindex"
	"github.com/life-index/backend/internal/integration/entrypoint/dto"
	"github.com/life-index/backend/internal/integration/persistence"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func newTestHolder(t *testing.T) *lifeindex.StateHolder {
	t.Helper()
	clock := &fixedClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return lifeindex.NewStateHolder(context.Background(), persistence.NewMemoryStateStore(), clock)
}

func setupLifeIndexRouter(t *testing.T, aiAvailable bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	holder := newTestHolder(t)
	c := NewLifeIndexController(
		lifeindex.NewGetDashboardUseCase(holder),
		lifeindex.NewGetCategoryUseCase(holder),
		lifeindex.NewGetHistoryUseCase(holder),
		lifeindex.NewUpdateMetricsUseCase(holder),
		lifeindex.NewAddMetricUseCase(holder),
		func() bool { return aiAvailable },
	)

	r := gin.New()
	r.GET("/life-index", c.Get)
	r.GET("/life-index/categories/:id", c.GetCategory)
	r.PUT("/life-index/categories/:id/metrics", c.UpdateMetrics)
	r.POST("/life-index/categories/:id/metrics", c.AddMetric)
	r.GET("/life-index/history", c.History)
	r.GET("/life-index/history/chart", c.HistoryChart)
	return r
}

func perform(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func TestLifeIndexController_Get(t *testing.T) {
	r := setupLifeIndexRouter(t, true)

	w := perform(r, http.MethodGet, "/life-index", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decode[dto.LifeIndexResponse](t, w)
	if len(resp.Categories) != 4 {
		t.Fatalf("expected 4 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[0].ID != "assets" || resp.Categories[0].ScoreDisplay != "410.00" {
		t.Errorf("unexpected assets category: %+v", resp.Categories[0])
	}
	if !resp.AIAvailable {
		t.Error("expected ai_available to be true")
	}
	if resp.LastUpdated != "2026-03-01T09:00:00Z" {
		t.Errorf("expected last updated 2026-03-01T09:00:00Z, got %s", resp.LastUpdated)
	}
}

func TestLifeIndexController_GetCategory(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedCode   string
	}{
		{name: "known category", path: "/life-index/categories/health", expectedStatus: http.StatusOK},
		{name: "unknown category", path: "/life-index/categories/wealth", expectedStatus: http.StatusBadRequest, expectedCode: "LIX-010001"},
		{name: "wrong case", path: "/life-index/categories/Health", expectedStatus: http.StatusBadRequest, expectedCode: "LIX-010001"},
	}

	r := setupLifeIndexRouter(t, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, tt.path, "")
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedCode != "" {
				resp := decode[dto.ErrorResponse](t, w)
				if resp.Code != tt.expectedCode {
					t.Errorf("expected code %s, got %s", tt.expectedCode, resp.Code)
				}
			}
		})
	}
}

func TestLifeIndexController_UpdateMetrics(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		body           string
		expectedStatus int
		expectedScore  float64
		expectedCode   string
	}{
		{
			name:           "health scenario",
			path:           "/life-index/categories/health/metrics",
			body:           `{"metrics":[{"id":"h1","name":"Exercise","value":150,"target":150,"unit":"mins"},{"id":"h2","name":"Eudaimonia","value":6,"target":5,"unit":"/10","type":"scale"}]}`,
			expectedStatus: http.StatusOK,
			expectedScore:  220,
		},
		{
			name:           "empty list",
			path:           "/life-index/categories/assets/metrics",
			body:           `{"metrics":[]}`,
			expectedStatus: http.StatusOK,
			expectedScore:  0,
		},
		{
			name:           "missing metrics field",
			path:           "/life-index/categories/assets/metrics",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed json",
			path:           "/life-index/categories/assets/metrics",
			body:           `{"metrics":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid type",
			path:           "/life-index/categories/assets/metrics",
			body:           `{"metrics":[{"id":"x","name":"Gold","value":1,"target":1,"unit":"oz","type":"percent"}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate ids",
			path:           "/life-index/categories/assets/metrics",
			body:           `{"metrics":[{"id":"x","name":"A","value":1,"target":1},{"id":"x","name":"B","value":1,"target":1}]}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown category",
			path:           "/life-index/categories/wealth/metrics",
			body:           `{"metrics":[]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "LIX-010001",
		},
		{
			name:           "score overflow",
			path:           "/life-index/categories/assets/metrics",
			body:           `{"metrics":[{"id":"x","name":"Gold","value":1e308,"target":0.5}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "LIX-010002",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupLifeIndexRouter(t, false)

			w := perform(r, http.MethodPut, tt.path, tt.body)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedCode != "" {
				if resp := decode[dto.ErrorResponse](t, w); resp.Code != tt.expectedCode {
					t.Errorf("expected code %s, got %s", tt.expectedCode, resp.Code)
				}
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			resp := decode[dto.UpdateMetricsResponse](t, w)
			if resp.Category.Score != tt.expectedScore {
				t.Errorf("expected score %v, got %v", tt.expectedScore, resp.Category.Score)
			}
			if resp.LatestPoint.TotalScore != resp.TotalIndex {
				t.Errorf("expected latest point total %v to match index %v", resp.LatestPoint.TotalScore, resp.TotalIndex)
			}
		})
	}
}

func TestLifeIndexController_AddMetric(t *testing.T) {
	t.Run("empty body uses defaults", func(t *testing.T) {
		r := setupLifeIndexRouter(t, false)

		w := perform(r, http.MethodPost, "/life-index/categories/cognition/metrics", "")

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
		}
		resp := decode[dto.UpdateMetricsResponse](t, w)
		if len(resp.Category.Metrics) != 4 {
			t.Fatalf("expected 4 metrics, got %d", len(resp.Category.Metrics))
		}
		added := resp.Category.Metrics[3]
		if added.Name != "New Component" || added.Target != 100 || added.Value != 0 || added.Type != "numeric" {
			t.Errorf("unexpected default metric: %+v", added)
		}
	})

	t.Run("explicit fields", func(t *testing.T) {
		r := setupLifeIndexRouter(t, false)

		w := perform(r, http.MethodPost, "/life-index/categories/health/metrics", `{"name":"Meditation","value":20,"target":10,"unit":"mins","type":"scale"}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", w.Code)
		}
		resp := decode[dto.UpdateMetricsResponse](t, w)
		added := resp.Category.Metrics[len(resp.Category.Metrics)-1]
		if added.Name != "Meditation" || added.Points != 200 || added.Type != "scale" {
			t.Errorf("unexpected metric: %+v", added)
		}
	})

	t.Run("score overflow keeps the dashboard readable", func(t *testing.T) {
		r := setupLifeIndexRouter(t, false)

		w := perform(r, http.MethodPost, "/life-index/categories/assets/metrics", `{"value":1e308,"target":0.5}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", w.Code)
		}

		w = perform(r, http.MethodGet, "/life-index", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if resp := decode[dto.LifeIndexResponse](t, w); resp.Categories[0].ScoreDisplay != "410.00" {
			t.Errorf("expected assets to stay at 410.00, got %s", resp.Categories[0].ScoreDisplay)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		r := setupLifeIndexRouter(t, false)

		w := perform(r, http.MethodPost, "/life-index/categories/wealth/metrics", "")

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestLifeIndexController_History(t *testing.T) {
	r := setupLifeIndexRouter(t, false)

	for i := 0; i < 3; i++ {
		w := perform(r, http.MethodPut, "/life-index/categories/assets/metrics", `{"metrics":[{"id":"m1","name":"Cash","value":100,"target":100}]}`)
		if w.Code != http.StatusOK {
			t.Fatalf("update %d failed with status %d", i, w.Code)
		}
	}

	w := perform(r, http.MethodGet, "/life-index/history", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	resp := decode[dto.HistoryResponse](t, w)
	if len(resp.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(resp.Points))
	}
	if resp.Limit != 30 {
		t.Errorf("expected limit 30, got %d", resp.Limit)
	}
}

func TestLifeIndexController_HistoryChart(t *testing.T) {
	r := setupLifeIndexRouter(t, false)

	w := perform(r, http.MethodGet, "/life-index/history/chart", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "Now") {
		t.Error("expected a single Now point without history")
	}
}
