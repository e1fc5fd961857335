package commands

import (
	"context"

	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/order"
	"lessonbook/internal/infra/db"

	"github.com/google/uuid"
)

// ReservedSeat is the write-side snapshot returned by a successful
// TryReserve: the price and subject captured atomically with the
// decrement, enough to answer the checkout without reading back.
type ReservedSeat struct {
	LessonID       uuid.UUID
	Subject        string
	Quantity       int32
	UnitPriceCents int64
}

// UpdateLessonFields carries a partial metadata update. Nil fields are
// left untouched. AvailableSlots is deliberately absent: seat counters
// change only through TryReserve/Release and the capacity delta rule.
type UpdateLessonFields struct {
	Subject    *string
	Location   *string
	PriceCents *int64
	Capacity   *int32
}

type LessonRepository interface {
	Create(ctx context.Context, l *lesson.Lesson) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, fields UpdateLessonFields) error
	Delete(ctx context.Context, id uuid.UUID) error

	// TryReserve atomically decrements available seats, failing without
	// any change when fewer than quantity remain. One conditional UPDATE,
	// never a read-then-write pair.
	TryReserve(ctx context.Context, lessonID uuid.UUID, quantity int32) (*ReservedSeat, error)

	// Release returns seats reserved by a failed checkout. Clamped at
	// capacity; a missing lesson is reported, not fatal.
	Release(ctx context.Context, lessonID uuid.UUID, quantity int32) error
}

// IdempotencyRecord links a previously confirmed order to the checkout
// request that produced it.
type IdempotencyRecord struct {
	OrderID     uuid.UUID
	RequestHash string
}

type OrderRepository interface {
	Create(ctx context.Context, tx db.DBTX, o *order.Order, idempotencyKey *uuid.UUID, requestHash string) (uuid.UUID, error)
	FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}
