package request

import (
	"github.com/google/uuid"

	"lessonbook/internal/domain/order"
)

type CheckoutLine struct {
	LessonID uuid.UUID `json:"lessonId" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type CheckoutRequest struct {
	CustomerName  string         `json:"customerName" binding:"required"`
	CustomerPhone string         `json:"customerPhone" binding:"required"`
	Lines         []CheckoutLine `json:"lines" binding:"required,min=1,dive"`
}

// ToDomain re-validates through the domain constructor so callers that
// bypass gin binding get the same rules.
func (r CheckoutRequest) ToDomain() (*order.Draft, error) {
	lines := make([]order.DraftLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, order.DraftLine{LessonID: l.LessonID, Quantity: l.Quantity})
	}
	return order.NewDraft(r.CustomerName, r.CustomerPhone, lines)
}
