package repository

import (
	"context"

	"lessonbook/internal/domain/order"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a confirmed order and its lines. Runs on the caller's
// transaction: the order either lands whole or not at all.
func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order, idempotencyKey *uuid.UUID, requestHash string) (uuid.UUID, error) {
	const orderStmt = `
INSERT INTO orders (id, customer_name, customer_phone, total_cents, idempotency_key, request_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	var hash *string
	if idempotencyKey != nil {
		hash = &requestHash
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, orderStmt,
		o.ID(), o.CustomerName(), o.CustomerPhone(), o.Total().Cents(),
		pgconv.UUIDPtrToPgtype(idempotencyKey), pgconv.StringPtrToPgtype(hash),
		pgconv.TimeToPgtype(o.CreatedAt()),
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("idempotency key already used", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err)
	}

	const lineStmt = `
INSERT INTO order_lines (order_id, lesson_id, line_no, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4, $5)`

	for i, line := range o.Lines() {
		if _, err := tx.Exec(ctx, lineStmt,
			id, line.LessonID(), i+1, line.Quantity(), line.UnitPrice().Cents(),
		); err != nil {
			if isForeignKeyViolation(err) {
				return uuid.Nil, infra.WrapRepoErr("order line references missing lesson", err, infra.KindForeignKeyViolated)
			}
			return uuid.Nil, infra.WrapRepoErr("failed to create order line", err)
		}
	}

	return id, nil
}

// FindByIdempotencyKey returns the confirmed order previously created
// with the given key, or nil when the key is unused.
func (r *OrderRepository) FindByIdempotencyKey(ctx context.Context, key uuid.UUID) (*commands.IdempotencyRecord, error) {
	const query = `SELECT id, request_hash FROM orders WHERE idempotency_key = $1`

	var record commands.IdempotencyRecord
	var hash pgtype.Text
	err := r.pool.QueryRow(ctx, query, key).Scan(&record.OrderID, &hash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find order by idempotency key", err)
	}
	if h := pgconv.StringPtrFromPgtype(hash); h != nil {
		record.RequestHash = *h
	}
	return &record, nil
}
