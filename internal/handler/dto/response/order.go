package response

import (
	"time"

	"github.com/google/uuid"

	"lessonbook/internal/usecase/queries"
)

type OrderLineResponse struct {
	LessonID  uuid.UUID `json:"lessonId"`
	Subject   string    `json:"subject"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unitPrice"`
}

type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	CustomerName  string              `json:"customerName"`
	CustomerPhone string              `json:"customerPhone"`
	Lines         []OrderLineResponse `json:"lines"`
	Total         int64               `json:"total"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	lines := make([]OrderLineResponse, len(v.Lines))
	for i, l := range v.Lines {
		lines[i] = OrderLineResponse{
			LessonID:  l.LessonID,
			Subject:   l.Subject,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPriceCents,
		}
	}
	return &OrderResponse{
		ID:            v.ID,
		CustomerName:  v.CustomerName,
		CustomerPhone: v.CustomerPhone,
		Lines:         lines,
		Total:         v.TotalCents,
		Status:        v.Status,
		CreatedAt:     v.CreatedAt,
	}
}
