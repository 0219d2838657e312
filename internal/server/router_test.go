package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tutorlink/internal/config"
	"tutorlink/internal/dto"
	"tutorlink/internal/order"
	"tutorlink/internal/tags"
)

type mockSource struct{}

func (mockSource) Load(ctx context.Context) ([]tags.Option, error) {
	return tags.DefaultOptions, nil
}

func newTestRouter(t *testing.T, ordersAPI string) http.Handler {
	t.Helper()
	return newTestRouterWithTimeout(t, ordersAPI, 5*time.Second)
}

func newTestRouterWithTimeout(t *testing.T, ordersAPI string, requestTimeout time.Duration) http.Handler {
	t.Helper()
	cfg := &config.Config{
		OrdersAPI: config.OrdersAPIConfig{BaseURL: ordersAPI, Timeout: time.Second},
		Telegram:  config.TelegramConfig{InitDataTTL: time.Hour},
		Draft:     config.DraftConfig{TTL: time.Hour, ReapInterval: time.Minute},
	}
	vocabulary, tagsCtrl := tags.NewModule(mockSource{}, zap.NewNop())
	vocabulary.Load(context.Background())
	orderModule := order.NewModule(cfg, vocabulary, zap.NewNop())

	return NewRouter(orderModule, tagsCtrl, []string{"https://app.example"}, requestTimeout, zap.NewNop())
}

func TestRouter_Health(t *testing.T) {
	h := newTestRouter(t, "http://127.0.0.1:1")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp dto.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := newTestRouter(t, "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodOptions, "/api/drafts", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_DraftLifecycle(t *testing.T) {
	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ord_100"}`))
	}))
	defer api.Close()

	h := newTestRouter(t, api.URL)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/drafts", nil)
	req.Header.Set("Authorization", "tma query_id=1")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var view dto.DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPatch, "/api/drafts/"+view.ID,
		strings.NewReader(`{"title":"Алгебра","description":"Подготовка к экзамену","tags":["cpp"]}`))
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/"+view.ID+"/submit", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ord_100", resp.OrderID)
	assert.Equal(t, "/orders", resp.NavigateTo)
	assert.Equal(t, "tma query_id=1", gotAuth)
}

func submitValidDraft(t *testing.T, h http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/drafts", nil)
	req.Header.Set("Authorization", "tma query_id=1")
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var view dto.DraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/drafts/"+view.ID,
		strings.NewReader(`{"title":"Алгебра","description":"Подготовка к экзамену","tags":["cpp"]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/drafts/"+view.ID+"/submit", nil))
	return rec
}

func TestRouter_RequestTimeoutBoundsSubmit(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ord_late"}`))
	}))
	defer api.Close()

	h := newTestRouterWithTimeout(t, api.URL, 50*time.Millisecond)

	rec := submitValidDraft(t, h)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouter_SlowOrdersAPIWithinRequestTimeout(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"ord_slow"}`))
	}))
	defer api.Close()

	h := newTestRouterWithTimeout(t, api.URL, 2*time.Second)

	rec := submitValidDraft(t, h)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ord_slow", resp.OrderID)
}

func TestRouter_UpdateOrder(t *testing.T) {
	var gotMethod, gotPath string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer api.Close()

	h := newTestRouter(t, api.URL)

	req := httptest.NewRequest(http.MethodPut, "/api/orders/ord_5",
		strings.NewReader(`{"title":"Геометрия","description":"Разбор задач из ЕГЭ","tags":["cpp"],"min_price":0,"max_price":900}`))
	req.Header.Set("Authorization", "tma query_id=1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/orders/ord_5", gotPath)
}
