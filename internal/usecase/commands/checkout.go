package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"lessonbook/internal/domain/order"
	reqdto "lessonbook/internal/handler/dto/request"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/clock"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/queries"
	"lessonbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// LineError tags a checkout failure with the lesson the failing line
// referenced, so the boundary can report which line sank the order.
type LineError struct {
	LessonID uuid.UUID
	err      error
}

func NewLineError(lessonID uuid.UUID, err error) *LineError {
	return &LineError{LessonID: lessonID, err: err}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("lesson %s: %v", e.LessonID, e.err)
}

func (e *LineError) Unwrap() error { return e.err }

type CheckoutResult struct {
	Order *queries.OrderView
	// Replayed reports that the idempotency key matched a previously
	// confirmed order and no new seats were reserved.
	Replayed bool
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, req reqdto.CheckoutRequest, idempotencyKey *uuid.UUID) (*CheckoutResult, error)
}

type checkoutUseCaseImpl struct {
	lessonRepo   LessonRepository
	orderRepo    OrderRepository
	orderQueries queries.OrderQueries
	pool         shared.TxBeginner
	clock        clock.Clock
}

func NewCheckoutCommands(
	lessonRepo LessonRepository,
	orderRepo OrderRepository,
	orderQueries queries.OrderQueries,
	pool shared.TxBeginner,
	clock clock.Clock,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		lessonRepo:   lessonRepo,
		orderRepo:    orderRepo,
		orderQueries: orderQueries,
		pool:         pool,
		clock:        clock,
	}
}

// Checkout turns a cart into one confirmed order, or fails with zero
// net seat consumption. Reservation is per-line and atomic per lesson;
// order-level all-or-nothing comes from compensating releases in
// reverse order when any line fails.
func (c *checkoutUseCaseImpl) Checkout(
	ctx context.Context,
	req reqdto.CheckoutRequest,
	idempotencyKey *uuid.UUID,
) (*CheckoutResult, error) {
	draft, err := req.ToDomain()
	if err != nil {
		return nil, markDraftError(err)
	}

	requestHash := calculateRequestHash(req)

	if idempotencyKey != nil {
		replay, err := c.findReplay(ctx, *idempotencyKey, requestHash)
		if err != nil {
			return nil, err
		}
		if replay != nil {
			return replay, nil
		}
	}

	reserved, subjects, err := c.reserveLines(ctx, draft)
	if err != nil {
		return nil, err
	}

	entity, err := draft.Confirm(uuid.New(), reserved, c.clock.Now())
	if err != nil {
		// Cannot happen with lines built from the draft itself.
		c.compensate(ctx, reserved)
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	orderID, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		return c.orderRepo.Create(ctx, tx, entity, idempotencyKey, requestHash)
	})
	if err != nil {
		c.compensate(ctx, reserved)

		// A concurrent request with the same key confirmed first; its
		// order already holds the seats, ours were just given back.
		if idempotencyKey != nil && infra.IsKind(err, infra.KindDuplicateKey) {
			replay, replayErr := c.findReplay(ctx, *idempotencyKey, requestHash)
			if replayErr != nil {
				return nil, replayErr
			}
			if replay != nil {
				return replay, nil
			}
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	// The order is committed and the seats are taken; materialize the
	// response from state already in hand rather than a read-back that
	// could fail and misreport a successful checkout.
	return &CheckoutResult{Order: confirmedView(orderID, entity, subjects), Replayed: false}, nil
}

func confirmedView(id uuid.UUID, o *order.Order, subjects map[uuid.UUID]string) *queries.OrderView {
	lines := make([]queries.OrderLineView, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, queries.OrderLineView{
			LessonID:       l.LessonID(),
			Subject:        subjects[l.LessonID()],
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPrice().Cents(),
		})
	}
	return &queries.OrderView{
		ID:            id,
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Lines:         lines,
		TotalCents:    o.Total().Cents(),
		Status:        string(o.Status()),
		CreatedAt:     o.CreatedAt(),
	}
}

// reserveLines walks the draft in request order, capturing each lesson's
// price and subject together with the atomic decrement. The first
// failure undoes everything reserved so far and reports the offending
// lesson.
func (c *checkoutUseCaseImpl) reserveLines(ctx context.Context, draft *order.Draft) ([]order.Line, map[uuid.UUID]string, error) {
	lines := draft.Lines()
	reserved := make([]order.Line, 0, len(lines))
	subjects := make(map[uuid.UUID]string, len(lines))

	for _, dl := range lines {
		seat, err := c.lessonRepo.TryReserve(ctx, dl.LessonID, dl.Quantity)
		if err != nil {
			c.compensate(ctx, reserved)
			return nil, nil, NewLineError(dl.LessonID, reserveErrToSentinel(err))
		}

		price, priceErr := order.NewMoney(seat.UnitPriceCents)
		if priceErr == nil {
			var line order.Line
			line, priceErr = order.NewLine(seat.LessonID, seat.Quantity, price)
			if priceErr == nil {
				reserved = append(reserved, line)
				subjects[seat.LessonID] = seat.Subject
				continue
			}
		}

		// The store returned an unusable snapshot; give the seats back.
		if releaseErr := c.lessonRepo.Release(context.WithoutCancel(ctx), dl.LessonID, dl.Quantity); releaseErr != nil {
			slog.Warn("failed to release seats after bad reserve snapshot",
				"lesson_id", dl.LessonID, "quantity", dl.Quantity, "error", releaseErr)
		}
		c.compensate(ctx, reserved)
		return nil, nil, errs.Mark(priceErr, errs.ErrDatabaseOperationFailed)
	}

	return reserved, subjects, nil
}

// compensate releases reserved seats in reverse order, best-effort. A
// failed release is an anomaly to log; it never changes the checkout's
// outcome. Runs detached from request cancellation so seats are not
// stranded when the caller gives up mid-flight.
func (c *checkoutUseCaseImpl) compensate(ctx context.Context, reserved []order.Line) {
	releaseCtx := context.WithoutCancel(ctx)
	for i := len(reserved) - 1; i >= 0; i-- {
		line := reserved[i]
		if err := c.lessonRepo.Release(releaseCtx, line.LessonID(), line.Quantity()); err != nil {
			slog.Warn("compensation failed to release reserved seats",
				"lesson_id", line.LessonID(),
				"quantity", line.Quantity(),
				"error", err)
		}
	}
}

func (c *checkoutUseCaseImpl) findReplay(ctx context.Context, key uuid.UUID, requestHash string) (*CheckoutResult, error) {
	record, err := c.orderRepo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if record == nil {
		return nil, nil
	}

	if record.RequestHash != requestHash {
		return nil, errs.ErrIdempotencyConflict
	}

	view, err := c.orderQueries.GetByID(ctx, record.OrderID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &CheckoutResult{Order: view, Replayed: true}, nil
}

func reserveErrToSentinel(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrLessonNotFound)
	case infra.IsKind(err, infra.KindInsufficientCapacity):
		return errs.Mark(err, errs.ErrInsufficientCapacity)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

func markDraftError(err error) error {
	if errors.Is(err, order.ErrDuplicateLesson) {
		return errs.Mark(err, errs.ErrDuplicateLine)
	}
	return errs.Mark(err, errs.ErrDomainValidation)
}

func calculateRequestHash(req reqdto.CheckoutRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
