package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutorlink/internal/domain"
	"tutorlink/internal/errors"
)

// HTTPOrderRepository talks to the remote orders service. Every call carries
// the caller's raw Telegram init data as its credential.
type HTTPOrderRepository struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewHTTPOrderRepository(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPOrderRepository {
	return &HTTPOrderRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// Create posts a new order and returns the identifier the service assigned.
func (r *HTTPOrderRepository) Create(ctx context.Context, payload domain.OrderCreate, initData string) (string, error) {
	var raw json.RawMessage
	if err := r.do(ctx, http.MethodPost, "/orders", initData, payload, &raw); err != nil {
		return "", fmt.Errorf("creating order: %w", err)
	}

	orderID, err := decodeOrderID(raw)
	if err != nil {
		return "", fmt.Errorf("creating order: %w", err)
	}
	return orderID, nil
}

func (r *HTTPOrderRepository) FindByID(ctx context.Context, id string, initData string) (*domain.OrderDetails, error) {
	var details domain.OrderDetails
	if err := r.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), initData, nil, &details); err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	return &details, nil
}

func (r *HTTPOrderRepository) List(ctx context.Context, page int, initData string) (*domain.OrderPagination, error) {
	path := "/orders?page=" + strconv.Itoa(page)

	var pagination domain.OrderPagination
	if err := r.do(ctx, http.MethodGet, path, initData, nil, &pagination); err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if pagination.Orders == nil {
		pagination.Orders = []domain.Order{}
	}
	return &pagination, nil
}

func (r *HTTPOrderRepository) Update(ctx context.Context, id string, update domain.OrderUpdate, initData string) error {
	if err := r.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id), initData, update, nil); err != nil {
		return fmt.Errorf("updating order: %w", err)
	}
	return nil
}

func (r *HTTPOrderRepository) FindCurrentResponse(ctx context.Context, orderID string, initData string) (*domain.CurrentResponse, error) {
	var current domain.CurrentResponse
	if err := r.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/response", initData, nil, &current); err != nil {
		return nil, fmt.Errorf("querying current response: %w", err)
	}
	return &current, nil
}

func (r *HTTPOrderRepository) do(ctx context.Context, method, path, initData string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "tma "+initData)
	req.Header.Set("X-Request-ID", requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return errors.NewInternalError("orders api unreachable", err)
	}
	defer resp.Body.Close()

	r.logger.Debug("orders api call",
		zap.String("requestId", requestID),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return errors.NewNotFoundError(fmt.Sprintf("%s not found", path))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NewUpstreamError(resp.StatusCode, readErrorMessage(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// decodeOrderID accepts both {"id": "..."} and a bare JSON string.
func decodeOrderID(raw json.RawMessage) (string, error) {
	var id string
	if err := json.Unmarshal(raw, &id); err == nil && id != "" {
		return id, nil
	}

	var created createOrderResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return "", fmt.Errorf("decoding order id: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("orders api returned no order id")
	}
	return created.ID, nil
}

func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil {
		for _, msg := range []string{body.Message, body.Detail, body.Error} {
			if msg != "" {
				return msg
			}
		}
	}
	return strings.TrimSpace(string(data))
}
