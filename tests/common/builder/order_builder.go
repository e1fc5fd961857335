//go:build unit || e2e

package builder

import (
	"time"

	domorder "lessonbook/internal/domain/order"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID            uuid.UUID
	CustomerName  string
	CustomerPhone string
	Lines         []domorder.DraftLine
	CreatedAt     time.Time
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:            uuid.New(),
		CustomerName:  "Taro Yamada",
		CustomerPhone: "090-1234-5678",
		Lines: []domorder.DraftLine{
			{LessonID: uuid.New(), Quantity: 2},
		},
		CreatedAt: time.Now(),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) WithCustomerName(name string) *OrderBuilder {
	b.CustomerName = name
	return b
}

func (b *OrderBuilder) WithCustomerPhone(phone string) *OrderBuilder {
	b.CustomerPhone = phone
	return b
}

func (b *OrderBuilder) WithLines(lines ...domorder.DraftLine) *OrderBuilder {
	b.Lines = lines
	return b
}

// Build methods
func (b *OrderBuilder) BuildDraft() (*domorder.Draft, error) {
	return domorder.NewDraft(b.CustomerName, b.CustomerPhone, b.Lines)
}

func (b *OrderBuilder) BuildCheckoutRequestDTO() reqdto.CheckoutRequest {
	lines := make([]reqdto.CheckoutLine, len(b.Lines))
	for i, l := range b.Lines {
		lines[i] = reqdto.CheckoutLine{LessonID: l.LessonID, Quantity: l.Quantity}
	}
	return reqdto.CheckoutRequest{
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Lines:         lines,
	}
}

func (b *OrderBuilder) BuildView(unitPriceCents int64) *queries.OrderView {
	lines := make([]queries.OrderLineView, len(b.Lines))
	total := int64(0)
	for i, l := range b.Lines {
		lines[i] = queries.OrderLineView{
			LessonID:       l.LessonID,
			Subject:        "Beginner Guitar",
			Quantity:       l.Quantity,
			UnitPriceCents: unitPriceCents,
		}
		total += unitPriceCents * int64(l.Quantity)
	}
	return &queries.OrderView{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Lines:         lines,
		TotalCents:    total,
		Status:        string(domorder.StatusConfirmed),
		CreatedAt:     b.CreatedAt,
	}
}
