package domain

import (
	"fmt"
	"time"
)

type Order struct {
	ID            string    `json:"id"`
	StudentID     string    `json:"student_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	MinPrice      float64   `json:"min_price"`
	MaxPrice      float64   `json:"max_price"`
	Status        string    `json:"status"`
	ResponseCount int       `json:"response_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	OrderStatusOpen       = "open"
	OrderStatusInProgress = "in_progress"
	OrderStatusClosed     = "closed"
)

const MaxOrderTags = 3

// OrderDetails is an Order as seen on its detail page.
type OrderDetails struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	StudentID     string     `json:"student_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Grade         int        `json:"grade"`
	MinPrice      float64    `json:"min_price"`
	MaxPrice      float64    `json:"max_price"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	ResponseCount int        `json:"response_count"`
	Responses     []Response `json:"responses"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FinalResponse returns the accepted response, if any. More than one final
// response breaks the order invariant and is reported as an error.
func (d OrderDetails) FinalResponse() (*Response, error) {
	var final *Response
	for i := range d.Responses {
		if !d.Responses[i].IsFinal {
			continue
		}
		if final != nil {
			return nil, fmt.Errorf("order %s has more than one final response", d.ID)
		}
		final = &d.Responses[i]
	}
	return final, nil
}

// OrderCreate is the payload the orders service turns into a new Order.
type OrderCreate struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Grade       string   `json:"grade"`
	Tags        []string `json:"tags"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
}

type OrderUpdate struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	MinPrice    float64  `json:"min_price"`
	MaxPrice    float64  `json:"max_price"`
}

type OrderPagination struct {
	Orders []Order `json:"orders"`
	Pages  int     `json:"pages"`
}

func ValidPriceRange(minPrice, maxPrice float64) bool {
	return minPrice >= 0 && maxPrice >= minPrice
}
