package commands

import (
	"context"

	"lessonbook/internal/domain/lesson"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateLessonResult struct {
	LessonID uuid.UUID
}

type LessonCommands interface {
	Create(ctx context.Context, req reqdto.CreateLessonRequest) (*CreateLessonResult, error)
	Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateLessonRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type lessonUseCaseImpl struct {
	repo LessonRepository
}

func NewLessonCommands(repo LessonRepository) LessonCommands {
	return &lessonUseCaseImpl{repo: repo}
}

func (u *lessonUseCaseImpl) Create(ctx context.Context, req reqdto.CreateLessonRequest) (*CreateLessonResult, error) {
	entity, err := lesson.New(uuid.New(), req.Subject, req.Location, req.PriceCents, req.Capacity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	id, err := u.repo.Create(ctx, entity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return &CreateLessonResult{LessonID: id}, nil
}

func (u *lessonUseCaseImpl) Update(ctx context.Context, id uuid.UUID, req reqdto.UpdateLessonRequest) error {
	if err := lesson.ValidateMetadata(req.Subject, req.Location, req.PriceCents, req.Capacity); err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}

	fields := UpdateLessonFields{
		Subject:    req.Subject,
		Location:   req.Location,
		PriceCents: req.PriceCents,
		Capacity:   req.Capacity,
	}

	if err := u.repo.Update(ctx, id, fields); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrLessonNotFound)
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

func (u *lessonUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return errs.Mark(err, errs.ErrLessonNotFound)
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return errs.Mark(err, errs.ErrLessonInUse)
		default:
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}
