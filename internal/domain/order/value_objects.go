package order

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("line quantity must be at least 1")
	ErrNegativeAmount  = errors.New("money amount cannot be negative")
)

// Money is a non-negative amount in cents. There is only one currency.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) MultiplyBy(n int32) Money {
	return Money{cents: m.cents * int64(n)}
}

// Line is one priced order line: a quantity of seats on a single lesson.
type Line struct {
	lessonID  uuid.UUID
	quantity  int32
	unitPrice Money
}

func NewLine(lessonID uuid.UUID, quantity int32, unitPrice Money) (Line, error) {
	if quantity < 1 {
		return Line{}, ErrInvalidQuantity
	}
	return Line{lessonID: lessonID, quantity: quantity, unitPrice: unitPrice}, nil
}

func (l Line) LessonID() uuid.UUID { return l.lessonID }
func (l Line) Quantity() int32     { return l.quantity }
func (l Line) UnitPrice() Money    { return l.unitPrice }

func (l Line) Total() Money {
	return l.unitPrice.MultiplyBy(l.quantity)
}
