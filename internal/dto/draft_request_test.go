package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateDraftRequest_PriceInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want *PriceInput
	}{
		{name: "string", body: `{"min_price":"150"}`, want: priceInput("150")},
		{name: "number", body: `{"min_price":150.5}`, want: priceInput("150.5")},
		{name: "non numeric text kept raw", body: `{"min_price":"abc"}`, want: priceInput("abc")},
		{name: "absent", body: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateDraftRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, req.MinPrice)
		})
	}
}

func TestUpdateDraftRequest_PriceInput_RejectsObjects(t *testing.T) {
	var req UpdateDraftRequest
	err := json.Unmarshal([]byte(`{"max_price":{"value":1}}`), &req)
	assert.Error(t, err)
}

func TestUpdateDraftRequest_TagsPresence(t *testing.T) {
	var cleared UpdateDraftRequest
	require.NoError(t, json.Unmarshal([]byte(`{"tags":[]}`), &cleared))
	require.NotNil(t, cleared.Tags)
	assert.Empty(t, *cleared.Tags)

	var untouched UpdateDraftRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Алгебра"}`), &untouched))
	assert.Nil(t, untouched.Tags)
	assert.Equal(t, "Алгебра", *untouched.Title)
}

func priceInput(s string) *PriceInput {
	p := PriceInput(s)
	return &p
}
