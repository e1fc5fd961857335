package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerName  = errors.New("customer name cannot be empty")
	ErrEmptyCustomerPhone = errors.New("customer phone cannot be empty")
	ErrNoLines            = errors.New("order must contain at least one line")
	ErrDuplicateLesson    = errors.New("order lines must reference distinct lessons")
	ErrLineCountMismatch  = errors.New("priced lines do not match draft lines")
)

type Status string

const (
	// StatusConfirmed is the only status ever persisted. A rejected
	// checkout produces no order record at all.
	StatusConfirmed Status = "confirmed"
)

// Order is a confirmed, immutable record of seats purchased by one
// customer across one or more lessons.
type Order struct {
	id            uuid.UUID
	customerName  string
	customerPhone string
	lines         []Line
	total         Money
	status        Status
	createdAt     time.Time
}

func (o *Order) ID() uuid.UUID         { return o.id }
func (o *Order) CustomerName() string  { return o.customerName }
func (o *Order) CustomerPhone() string { return o.customerPhone }
func (o *Order) Status() Status        { return o.status }
func (o *Order) Total() Money          { return o.total }
func (o *Order) CreatedAt() time.Time  { return o.createdAt }

func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}
