package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UpdateDraftRequest carries field edits; absent fields are left untouched.
type UpdateDraftRequest struct {
	Name        *string     `json:"name"`
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Grade       *string     `json:"grade"`
	Tags        *[]string   `json:"tags"`
	MinPrice    *PriceInput `json:"min_price"`
	MaxPrice    *PriceInput `json:"max_price"`
}

// PriceInput is the raw text of a price field. Clients may send it as a JSON
// string or a JSON number; either way it is parsed later, together with its
// error message.
type PriceInput string

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or a number")
	}
	*p = PriceInput(n.String())
	return nil
}
