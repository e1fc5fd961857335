package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DraftLine is an unpriced checkout line as submitted by the customer.
type DraftLine struct {
	LessonID uuid.UUID
	Quantity int32
}

// Draft is a validated checkout request before any seat has been
// reserved. It holds no price: prices are captured per lesson at
// reservation time and attached via Confirm.
type Draft struct {
	customerName  string
	customerPhone string
	lines         []DraftLine
}

// NewDraft validates the request shape: non-empty customer fields, at
// least one line, positive quantities, and no lesson referenced twice.
// Duplicate lines are rejected rather than merged.
func NewDraft(customerName, customerPhone string, lines []DraftLine) (*Draft, error) {
	customerName = strings.TrimSpace(customerName)
	customerPhone = strings.TrimSpace(customerPhone)

	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	if customerPhone == "" {
		return nil, ErrEmptyCustomerPhone
	}
	if len(lines) == 0 {
		return nil, ErrNoLines
	}

	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if _, dup := seen[line.LessonID]; dup {
			return nil, ErrDuplicateLesson
		}
		seen[line.LessonID] = struct{}{}
	}

	copied := make([]DraftLine, len(lines))
	copy(copied, lines)

	return &Draft{
		customerName:  customerName,
		customerPhone: customerPhone,
		lines:         copied,
	}, nil
}

func (d *Draft) CustomerName() string  { return d.customerName }
func (d *Draft) CustomerPhone() string { return d.customerPhone }

func (d *Draft) Lines() []DraftLine {
	out := make([]DraftLine, len(d.lines))
	copy(out, d.lines)
	return out
}

// Confirm turns the draft into a confirmed order using the unit prices
// captured while reserving. Priced lines must correspond one-to-one, in
// order, with the draft lines.
func (d *Draft) Confirm(id uuid.UUID, priced []Line, now time.Time) (*Order, error) {
	if len(priced) != len(d.lines) {
		return nil, ErrLineCountMismatch
	}
	for i, line := range priced {
		if line.LessonID() != d.lines[i].LessonID || line.Quantity() != d.lines[i].Quantity {
			return nil, ErrLineCountMismatch
		}
	}

	total := Money{}
	for _, line := range priced {
		total = total.Add(line.Total())
	}

	lines := make([]Line, len(priced))
	copy(lines, priced)

	return &Order{
		id:            id,
		customerName:  d.customerName,
		customerPhone: d.customerPhone,
		lines:         lines,
		total:         total,
		status:        StatusConfirmed,
		createdAt:     now,
	}, nil
}
