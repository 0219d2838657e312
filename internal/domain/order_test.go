package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrder_Creation(t *testing.T) {
	createdAt := time.Now()
	updatedAt := time.Now()

	order := Order{
		ID:            "ord_1",
		StudentID:     "42",
		Title:         "Math help",
		Description:   "I need help with calculus",
		Tags:          []string{"math"},
		MinPrice:      100,
		MaxPrice:      500,
		Status:        OrderStatusOpen,
		ResponseCount: 2,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}

	assert.Equal(t, "ord_1", order.ID)
	assert.Equal(t, "42", order.StudentID)
	assert.Equal(t, []string{"math"}, order.Tags)
	assert.Equal(t, OrderStatusOpen, order.Status)
	assert.Equal(t, 2, order.ResponseCount)
	assert.Equal(t, createdAt, order.CreatedAt)
	assert.Equal(t, updatedAt, order.UpdatedAt)
}

func TestOrder_StatusConstants(t *testing.T) {
	assert.Equal(t, "open", OrderStatusOpen)
	assert.Equal(t, "in_progress", OrderStatusInProgress)
	assert.Equal(t, "closed", OrderStatusClosed)
}

func TestOrderCreate_JSONFieldNames(t *testing.T) {
	payload := OrderCreate{
		Name:        "Aa",
		Title:       "Math help",
		Description: "I need help with calculus",
		Grade:       "1",
		Tags:        []string{"math"},
		MinPrice:    100,
		MaxPrice:    500,
	}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Aa",
		"title": "Math help",
		"description": "I need help with calculus",
		"grade": "1",
		"tags": ["math"],
		"min_price": 100,
		"max_price": 500
	}`, string(data))
}

func TestOrderDetails_DecodesRemotePayload(t *testing.T) {
	body := `{
		"id": "ord_7", "name": "Аноним", "student_id": "9", "title": "Physics",
		"description": "Mechanics homework", "grade": 10, "min_price": 0, "max_price": 800,
		"tags": ["physics"], "status": "open", "response_count": 1,
		"responses": [{"id": "r1", "tutor_id": 77, "name": "Ivan", "is_final": false, "created_at": "2026-01-02T10:00:00Z"}],
		"created_at": "2026-01-01T10:00:00Z", "updated_at": "2026-01-01T10:00:00Z"
	}`

	var details OrderDetails
	require.NoError(t, json.Unmarshal([]byte(body), &details))

	assert.Equal(t, 10, details.Grade)
	require.Len(t, details.Responses, 1)
	assert.Equal(t, int64(77), details.Responses[0].TutorID)
	assert.False(t, details.Responses[0].IsFinal)
}

func TestOrderDetails_FinalResponse(t *testing.T) {
	tests := []struct {
		name      string
		responses []Response
		wantID    string
		wantErr   bool
	}{
		{
			name:      "no responses",
			responses: nil,
		},
		{
			name: "none accepted",
			responses: []Response{
				{ID: "r1"},
				{ID: "r2"},
			},
		},
		{
			name: "one accepted",
			responses: []Response{
				{ID: "r1"},
				{ID: "r2", IsFinal: true},
			},
			wantID: "r2",
		},
		{
			name: "two accepted",
			responses: []Response{
				{ID: "r1", IsFinal: true},
				{ID: "r2", IsFinal: true},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := OrderDetails{ID: "ord_1", Responses: tt.responses}

			final, err := details.FinalResponse()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantID == "" {
				assert.Nil(t, final)
				return
			}
			require.NotNil(t, final)
			assert.Equal(t, tt.wantID, final.ID)
		})
	}
}

func TestValidPriceRange(t *testing.T) {
	assert.True(t, ValidPriceRange(0, 0))
	assert.True(t, ValidPriceRange(100, 500))
	assert.False(t, ValidPriceRange(-1, 500))
	assert.False(t, ValidPriceRange(600, 500))
}

func TestIsKnownGrade(t *testing.T) {
	assert.True(t, IsKnownGrade("1"))
	assert.True(t, IsKnownGrade("11"))
	assert.True(t, IsKnownGrade("4_course"))
	assert.False(t, IsKnownGrade("12"))
	assert.False(t, IsKnownGrade(""))
	assert.Len(t, Grades, 15)
}
