package domain

import "time"

// Response is a tutor's reply to an order.
type Response struct {
	ID        string    `json:"id"`
	TutorID   int64     `json:"tutor_id"`
	Name      string    `json:"name"`
	IsFinal   bool      `json:"is_final"`
	CreatedAt time.Time `json:"created_at"`
}

type CurrentResponse struct {
	ID            string    `json:"id"`
	OrderID       string    `json:"order_id"`
	TutorID       int64     `json:"tutor_id"`
	TutorUsername string    `json:"tutor_username"`
	Name          string    `json:"name"`
	Greetings     string    `json:"greetings"`
	IsFinal       bool      `json:"is_final"`
	CreatedAt     time.Time `json:"created_at"`
}
