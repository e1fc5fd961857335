package repository

import (
	"context"
	"log/slog"

	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/patch"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonRepository struct {
	pool *pgxpool.Pool
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{pool: pool}
}

func (r *LessonRepository) Create(ctx context.Context, l *lesson.Lesson) (uuid.UUID, error) {
	const stmt = `
INSERT INTO lessons (id, subject, location, price_cents, capacity, available_slots)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, stmt,
		l.ID(), l.Subject(), l.Location(), l.PriceCents(), l.Capacity(), l.AvailableSlots(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create lesson", err)
	}
	return id, nil
}

// Update patches metadata in one statement. A capacity change shifts
// available_slots by the same delta, clamped at zero: shrinking below
// outstanding reservations never drives the counter negative.
func (r *LessonRepository) Update(ctx context.Context, id uuid.UUID, fields commands.UpdateLessonFields) error {
	const stmt = `
WITH prior AS (
	SELECT id, available_slots, capacity FROM lessons WHERE id = $1
)
UPDATE lessons l SET
	subject = COALESCE($2, l.subject),
	location = COALESCE($3, l.location),
	price_cents = COALESCE($4, l.price_cents),
	capacity = COALESCE($5, l.capacity),
	available_slots = CASE
		WHEN $5::integer IS NULL THEN l.available_slots
		ELSE GREATEST(l.available_slots + ($5 - l.capacity), 0)
	END,
	updated_at = NOW()
FROM prior
WHERE l.id = prior.id
RETURNING prior.available_slots, prior.capacity`

	var priorSlots, priorCapacity int32
	err := r.pool.QueryRow(ctx, stmt,
		id, fields.Subject, fields.Location, fields.PriceCents, fields.Capacity,
	).Scan(&priorSlots, &priorCapacity)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("lesson not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to update lesson", err)
	}

	newCapacity := patch.Coalesce(fields.Capacity, priorCapacity)
	if priorSlots+(newCapacity-priorCapacity) < 0 {
		slog.Warn("capacity shrunk below outstanding reservations, available slots clamped to zero",
			"lesson_id", id,
			"prior_capacity", priorCapacity,
			"new_capacity", newCapacity,
			"prior_available_slots", priorSlots)
	}
	return nil
}

func (r *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr("lesson is referenced by order lines", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to delete lesson", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lesson not found", nil, infra.KindNotFound)
	}
	return nil
}

// TryReserve is the linearizable compare-and-decrement: one conditional
// UPDATE that only fires while enough seats remain, capturing the price
// in the same statement. Concurrent callers serialize on the row lock.
func (r *LessonRepository) TryReserve(ctx context.Context, lessonID uuid.UUID, quantity int32) (*commands.ReservedSeat, error) {
	const stmt = `
UPDATE lessons
SET available_slots = available_slots - $2, updated_at = NOW()
WHERE id = $1 AND available_slots >= $2
RETURNING price_cents, subject`

	var (
		priceCents int64
		subject    string
	)
	err := r.pool.QueryRow(ctx, stmt, lessonID, quantity).Scan(&priceCents, &subject)
	if err == nil {
		return &commands.ReservedSeat{
			LessonID:       lessonID,
			Subject:        subject,
			Quantity:       quantity,
			UnitPriceCents: priceCents,
		}, nil
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to reserve seats", err)
	}

	// Zero rows: either the lesson is gone or the seats are. Probe once
	// to tell the two apart; the answer is advisory, the guard above is
	// what keeps the counter sound.
	var exists bool
	if probeErr := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM lessons WHERE id = $1)`, lessonID,
	).Scan(&exists); probeErr != nil {
		return nil, infra.WrapRepoErr("failed to probe lesson after reserve miss", probeErr)
	}
	if !exists {
		return nil, infra.WrapRepoErr("lesson not found", nil, infra.KindNotFound)
	}
	return nil, infra.WrapRepoErr("not enough available slots", nil, infra.KindInsufficientCapacity)
}

// Release gives reserved seats back, clamped at capacity so a stray
// double release cannot break the invariant.
func (r *LessonRepository) Release(ctx context.Context, lessonID uuid.UUID, quantity int32) error {
	const stmt = `
UPDATE lessons
SET available_slots = LEAST(available_slots + $2, capacity), updated_at = NOW()
WHERE id = $1`

	tag, err := r.pool.Exec(ctx, stmt, lessonID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to release seats", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lesson vanished before release", nil, infra.KindNotFound)
	}
	return nil
}
