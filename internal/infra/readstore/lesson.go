package readstore

import (
	"context"
	"fmt"
	"strings"

	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/pgconv"
	"lessonbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LessonReadStore struct {
	pool *pgxpool.Pool
}

func NewLessonReadStore(pool *pgxpool.Pool) *LessonReadStore {
	return &LessonReadStore{pool: pool}
}

const lessonColumns = `id, subject, location, price_cents, capacity, available_slots, created_at, updated_at`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern neutralizes LIKE metacharacters in user input so a
// filter of "100%" matches that literal text, not any prefix.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

func (r *LessonReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LessonView, error) {
	query := fmt.Sprintf(`SELECT %s FROM lessons WHERE id = $1`, lessonColumns)

	var v queries.LessonView
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Subject, &v.Location, &v.PriceCents, &v.Capacity, &v.AvailableSlots, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lesson not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lesson by ID", err)
	}
	return &v, nil
}

func (r *LessonReadStore) FindAll(ctx context.Context, filter queries.LessonFilter) ([]*queries.LessonView, error) {
	query := fmt.Sprintf(`SELECT %s FROM lessons`, lessonColumns)
	args := make([]any, 0, 2)

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		clause := " WHERE "
		if len(args) > 1 {
			clause = " AND "
		}
		query += clause + fmt.Sprintf(cond, len(args))
	}

	if filter.Subject != nil {
		appendCond(`subject ILIKE '%%' || $%d || '%%'`, escapeLikePattern(*filter.Subject))
	}
	if filter.Location != nil {
		appendCond(`location ILIKE '%%' || $%d || '%%'`, escapeLikePattern(*filter.Location))
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list lessons", err)
	}
	defer rows.Close()

	result := make([]*queries.LessonView, 0)
	for rows.Next() {
		var v queries.LessonView
		if err := rows.Scan(
			&v.ID, &v.Subject, &v.Location, &v.PriceCents, &v.Capacity, &v.AvailableSlots, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan lesson row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read lesson rows", err)
	}
	return result, nil
}
