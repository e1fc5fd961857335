package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type LessonView struct {
	ID             uuid.UUID `json:"id"`
	Subject        string    `json:"subject"`
	Location       string    `json:"location"`
	PriceCents     int64     `json:"price_cents"`
	Capacity       int32     `json:"capacity"`
	AvailableSlots int32     `json:"available_slots"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type OrderLineView struct {
	LessonID       uuid.UUID `json:"lesson_id"`
	Subject        string    `json:"subject"`
	Quantity       int32     `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	Lines         []OrderLineView `json:"lines"`
	TotalCents    int64           `json:"total_cents"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LessonFilter narrows the catalog listing. Nil fields match everything.
type LessonFilter struct {
	Subject  *string
	Location *string
}
