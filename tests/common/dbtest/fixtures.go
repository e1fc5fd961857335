//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// the minimal interface required for seeding and inspecting test data.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ResetDB clears all mutable state between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(),
		"TRUNCATE order_lines, orders, lessons RESTART IDENTITY CASCADE")
	return err
}

func CreateTestLesson(t *testing.T, db DBLike, subject, location string, priceCents int64, capacity int32) uuid.UUID {
	t.Helper()

	lessonID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO lessons (id, subject, location, price_cents, capacity, available_slots) VALUES ($1, $2, $3, $4, $5, $5)",
		lessonID, subject, location, priceCents, capacity)
	require.NoError(t, err)

	return lessonID
}

func LessonAvailableSlots(t *testing.T, db DBLike, lessonID uuid.UUID) int32 {
	t.Helper()

	var slots int32
	err := db.QueryRow(context.Background(),
		"SELECT available_slots FROM lessons WHERE id = $1", lessonID).Scan(&slots)
	require.NoError(t, err)

	return slots
}

func CountOrderLines(t *testing.T, db DBLike, lessonID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT COUNT(*) FROM order_lines WHERE lesson_id = $1", lessonID).Scan(&count)
	require.NoError(t, err)

	return count
}
