package readstore

import (
	"context"

	"lessonbook/internal/domain/order"
	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderReadStore struct {
	pool *pgxpool.Pool
}

func NewOrderReadStore(pool *pgxpool.Pool) *OrderReadStore {
	return &OrderReadStore{pool: pool}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	const orderQuery = `
SELECT id, customer_name, customer_phone, total_cents, created_at
FROM orders
WHERE id = $1`

	var v queries.OrderView
	err := r.pool.QueryRow(ctx, orderQuery, id).Scan(
		&v.ID, &v.CustomerName, &v.CustomerPhone, &v.TotalCents, &v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}
	v.Status = string(order.StatusConfirmed)

	const linesQuery = `
SELECT ol.lesson_id, l.subject, ol.quantity, ol.unit_price_cents
FROM order_lines ol
JOIN lessons l ON l.id = ol.lesson_id
WHERE ol.order_id = $1
ORDER BY ol.line_no`

	rows, err := r.pool.Query(ctx, linesQuery, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load order lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.OrderLineView
		if err := rows.Scan(&line.LessonID, &line.Subject, &line.Quantity, &line.UnitPriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order line row", err)
		}
		v.Lines = append(v.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order line rows", err)
	}

	return &v, nil
}
