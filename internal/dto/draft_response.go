package dto

import (
	"github.com/shopspring/decimal"

	apperrors "tutorlink/internal/errors"
	"tutorlink/internal/platform/telegram"
)

type DraftFields struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Grade       string          `json:"grade"`
	Tags        []string        `json:"tags"`
	MinPrice    decimal.Decimal `json:"min_price"`
	MaxPrice    decimal.Decimal `json:"max_price"`
}

// DraftResponse is everything the Mini App needs to render the create-order
// page.
type DraftResponse struct {
	TraceID    string                       `json:"trace_id"`
	ID         string                       `json:"id"`
	State      string                       `json:"state"`
	Fields     DraftFields                  `json:"fields"`
	Errors     map[string]string            `json:"errors"`
	Rejected   []apperrors.ValidationDetail `json:"rejected,omitempty"`
	Notices    []string                     `json:"notices"`
	MainButton telegram.ButtonState         `json:"main_button"`
	NavigateTo string                       `json:"navigate_to,omitempty"`
}

type SubmitResponse struct {
	TraceID    string   `json:"trace_id"`
	OrderID    string   `json:"order_id"`
	NavigateTo string   `json:"navigate_to"`
	Notices    []string `json:"notices"`
}

type ErrorResponse struct {
	TraceID string                       `json:"trace_id,omitempty"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
	Notices []string                     `json:"notices,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
