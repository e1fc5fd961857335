package queries

import (
	"context"

	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type LessonQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LessonView, error)
	List(ctx context.Context, filter LessonFilter) ([]*LessonView, error)
}

type LessonReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LessonView, error)
	FindAll(ctx context.Context, filter LessonFilter) ([]*LessonView, error)
}

type lessonQueriesImpl struct {
	repo LessonReadStore
}

func NewLessonQueries(repo LessonReadStore) LessonQueries {
	return &lessonQueriesImpl{repo: repo}
}

func (q *lessonQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LessonView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrLessonNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *lessonQueriesImpl) List(ctx context.Context, filter LessonFilter) ([]*LessonView, error) {
	views, err := q.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
