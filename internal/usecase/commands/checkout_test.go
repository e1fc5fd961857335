//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lessonbook/internal/domain/lesson"
	"lessonbook/internal/domain/order"
	"lessonbook/internal/infra"
	"lessonbook/internal/infra/db"
	"lessonbook/internal/pkg/clock"
	"lessonbook/internal/pkg/errs"
	"lessonbook/internal/usecase/commands"
	"lessonbook/internal/usecase/queries"
	"lessonbook/tests/common/builder"
	commandsmock "lessonbook/tests/mock/commands"
	queriesmock "lessonbook/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// fakeTxBeginner satisfies shared.TxBeginner without a database. The
// returned tx only supports Commit and Rollback; repositories under
// gomock never touch it.
type fakeTxBeginner struct{}

func (fakeTxBeginner) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{}, nil
}

type fakeTx struct {
	pgx.Tx
	committed bool
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	return nil
}

type CheckoutTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	lessonRepo   *commandsmock.MockLessonRepository
	orderRepo    *commandsmock.MockOrderRepository
	orderQueries *queriesmock.MockOrderQueries
	clock        *clock.MockClock
	uc           commands.CheckoutCommands
}

func (s *CheckoutTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.lessonRepo = commandsmock.NewMockLessonRepository(s.mockCtrl)
	s.orderRepo = commandsmock.NewMockOrderRepository(s.mockCtrl)
	s.orderQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	s.uc = commands.NewCheckoutCommands(s.lessonRepo, s.orderRepo, s.orderQueries, fakeTxBeginner{}, s.clock)
}

func (s *CheckoutTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) TestCheckout_SingleLine() {
	ob := builder.NewOrderBuilder()
	req := ob.BuildCheckoutRequestDTO()
	lessonID := req.Lines[0].LessonID
	orderID := uuid.New()

	s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonID, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonID, Subject: "Beginner Guitar", Quantity: 2, UnitPriceCents: 4500}, nil)
	s.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), nil, gomock.Any()).
		Return(orderID, nil)

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().NoError(err)
	s.False(result.Replayed)
	s.Equal(orderID, result.Order.ID)
	s.Equal(ob.CustomerName, result.Order.CustomerName)
	s.Equal(int64(9000), result.Order.TotalCents)
	s.Equal(string(order.StatusConfirmed), result.Order.Status)
	s.Equal(s.clock.Now(), result.Order.CreatedAt)
	s.Require().Len(result.Order.Lines, 1)
	s.Equal("Beginner Guitar", result.Order.Lines[0].Subject)
}

func (s *CheckoutTestSuite) TestCheckout_BrokenReadSideCannotFailConfirmedOrder() {
	// Once the insert commits, the seats are taken and the order is
	// durable. The response is built from reservation state, so a read
	// side that is down must not turn the checkout into an error.
	ob := builder.NewOrderBuilder()
	req := ob.BuildCheckoutRequestDTO()
	lessonID := req.Lines[0].LessonID
	orderID := uuid.New()

	s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonID, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonID, Subject: "Jazz Piano", Quantity: 2, UnitPriceCents: 6000}, nil)
	s.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), nil, gomock.Any()).
		Return(orderID, nil)
	s.orderQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
		Return(nil, errs.Mark(errs.New("read replica down"), errs.ErrDatabaseOperationFailed)).
		AnyTimes()

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().NoError(err)
	s.Equal(orderID, result.Order.ID)
	s.Equal(int64(12000), result.Order.TotalCents)
	s.Require().Len(result.Order.Lines, 1)
	s.Equal("Jazz Piano", result.Order.Lines[0].Subject)
}

func (s *CheckoutTestSuite) TestCheckout_MultiLineReservesInRequestOrder() {
	lessonA := uuid.New()
	lessonB := uuid.New()
	lessonC := uuid.New()
	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonA, 1),
		orderLine(lessonB, 2),
		orderLine(lessonC, 3),
	).BuildCheckoutRequestDTO()
	orderID := uuid.New()

	first := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonA, int32(1)).
		Return(&commands.ReservedSeat{LessonID: lessonA, Quantity: 1, UnitPriceCents: 1000}, nil)
	second := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonB, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonB, Quantity: 2, UnitPriceCents: 2000}, nil)
	third := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonC, int32(3)).
		Return(&commands.ReservedSeat{LessonID: lessonC, Quantity: 3, UnitPriceCents: 3000}, nil)
	gomock.InOrder(first, second, third)

	s.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), nil, gomock.Any()).
		Return(orderID, nil)

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().NoError(err)
	s.Equal(orderID, result.Order.ID)
	s.Equal(int64(14000), result.Order.TotalCents)
	s.Require().Len(result.Order.Lines, 3)
	s.Equal(lessonA, result.Order.Lines[0].LessonID)
	s.Equal(lessonC, result.Order.Lines[2].LessonID)
}

func (s *CheckoutTestSuite) TestCheckout_DuplicateLineRejectedBeforeReserving() {
	lessonID := uuid.New()
	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonID, 1),
		orderLine(lessonID, 2),
	).BuildCheckoutRequestDTO()

	// No repository expectations: rejection happens before any reserve.
	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, errs.ErrDuplicateLine)
}

func (s *CheckoutTestSuite) TestCheckout_MissingLessonCompensatesPriorLines() {
	lessonA := uuid.New()
	lessonB := uuid.New()
	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonA, 2),
		orderLine(lessonB, 1),
	).BuildCheckoutRequestDTO()

	reserveA := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonA, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonA, Quantity: 2, UnitPriceCents: 4500}, nil)
	reserveB := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonB, int32(1)).
		Return(nil, infra.WrapRepoErr("lesson not found", errors.New("no rows"), infra.KindNotFound))
	releaseA := s.lessonRepo.EXPECT().Release(gomock.Any(), lessonA, int32(2)).Return(nil)
	gomock.InOrder(reserveA, reserveB, releaseA)

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, errs.ErrLessonNotFound)

	var lineErr *commands.LineError
	s.Require().ErrorAs(err, &lineErr)
	s.Equal(lessonB, lineErr.LessonID)
}

func (s *CheckoutTestSuite) TestCheckout_InsufficientCapacityCompensatesInReverseOrder() {
	lessonA := uuid.New()
	lessonB := uuid.New()
	lessonC := uuid.New()
	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonA, 1),
		orderLine(lessonB, 1),
		orderLine(lessonC, 5),
	).BuildCheckoutRequestDTO()

	reserveA := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonA, int32(1)).
		Return(&commands.ReservedSeat{LessonID: lessonA, Quantity: 1, UnitPriceCents: 1000}, nil)
	reserveB := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonB, int32(1)).
		Return(&commands.ReservedSeat{LessonID: lessonB, Quantity: 1, UnitPriceCents: 2000}, nil)
	reserveC := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonC, int32(5)).
		Return(nil, infra.WrapRepoErr("insufficient capacity", errors.New("0 rows"), infra.KindInsufficientCapacity))
	releaseB := s.lessonRepo.EXPECT().Release(gomock.Any(), lessonB, int32(1)).Return(nil)
	releaseA := s.lessonRepo.EXPECT().Release(gomock.Any(), lessonA, int32(1)).Return(nil)
	gomock.InOrder(reserveA, reserveB, reserveC, releaseB, releaseA)

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, errs.ErrInsufficientCapacity)

	var lineErr *commands.LineError
	s.Require().ErrorAs(err, &lineErr)
	s.Equal(lessonC, lineErr.LessonID)
}

func (s *CheckoutTestSuite) TestCheckout_ReleaseFailureKeepsOriginalError() {
	lessonA := uuid.New()
	lessonB := uuid.New()
	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonA, 1),
		orderLine(lessonB, 1),
	).BuildCheckoutRequestDTO()

	s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonA, int32(1)).
		Return(&commands.ReservedSeat{LessonID: lessonA, Quantity: 1, UnitPriceCents: 1000}, nil)
	s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonB, int32(1)).
		Return(nil, infra.WrapRepoErr("insufficient capacity", errors.New("0 rows"), infra.KindInsufficientCapacity))
	s.lessonRepo.EXPECT().Release(gomock.Any(), lessonA, int32(1)).
		Return(errors.New("connection reset"))

	_, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().Error(err)
	s.ErrorIs(err, errs.ErrInsufficientCapacity)
}

func (s *CheckoutTestSuite) TestCheckout_CreateFailureReleasesSeats() {
	ob := builder.NewOrderBuilder()
	req := ob.BuildCheckoutRequestDTO()
	lessonID := req.Lines[0].LessonID

	s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonID, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonID, Quantity: 2, UnitPriceCents: 4500}, nil)
	s.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), nil, gomock.Any()).
		Return(uuid.Nil, infra.WrapRepoErr("insert failed", errors.New("connection reset"), infra.KindDBFailure))
	s.lessonRepo.EXPECT().Release(gomock.Any(), lessonID, int32(2)).Return(nil)

	result, err := s.uc.Checkout(context.Background(), req, nil)
	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, errs.ErrDatabaseOperationFailed)
}

func (s *CheckoutTestSuite) TestCheckout_IdempotentReplaySkipsReservation() {
	ob := builder.NewOrderBuilder()
	req := ob.BuildCheckoutRequestDTO()
	key := uuid.New()
	view := ob.BuildView(4500)

	s.orderRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), key).
		Return(&commands.IdempotencyRecord{OrderID: view.ID, RequestHash: requestHash(s.T(), req)}, nil)
	s.orderQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

	result, err := s.uc.Checkout(context.Background(), req, &key)
	s.Require().NoError(err)
	s.True(result.Replayed)
	s.Equal(view.ID, result.Order.ID)
}

func (s *CheckoutTestSuite) TestCheckout_IdempotencyKeyReuseWithDifferentBody() {
	req := builder.NewOrderBuilder().BuildCheckoutRequestDTO()
	key := uuid.New()

	s.orderRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), key).
		Return(&commands.IdempotencyRecord{OrderID: uuid.New(), RequestHash: "different-hash"}, nil)

	result, err := s.uc.Checkout(context.Background(), req, &key)
	s.Require().Error(err)
	s.Nil(result)
	s.ErrorIs(err, errs.ErrIdempotencyConflict)
}

func (s *CheckoutTestSuite) TestCheckout_ConcurrentDuplicateKeyFallsBackToReplay() {
	ob := builder.NewOrderBuilder()
	req := ob.BuildCheckoutRequestDTO()
	lessonID := req.Lines[0].LessonID
	key := uuid.New()
	view := ob.BuildView(4500)

	// First lookup sees nothing, the insert then collides with the
	// concurrent winner, seats are returned, and the winner's order is
	// replayed.
	firstLookup := s.orderRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), key).Return(nil, nil)
	reserve := s.lessonRepo.EXPECT().TryReserve(gomock.Any(), lessonID, int32(2)).
		Return(&commands.ReservedSeat{LessonID: lessonID, Quantity: 2, UnitPriceCents: 4500}, nil)
	create := s.orderRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), &key, gomock.Any()).
		Return(uuid.Nil, infra.WrapRepoErr("duplicate idempotency key", errors.New("unique violation"), infra.KindDuplicateKey))
	release := s.lessonRepo.EXPECT().Release(gomock.Any(), lessonID, int32(2)).Return(nil)
	secondLookup := s.orderRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), key).
		Return(&commands.IdempotencyRecord{OrderID: view.ID, RequestHash: requestHash(s.T(), req)}, nil)
	gomock.InOrder(firstLookup, reserve, create, release, secondLookup)

	s.orderQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

	result, err := s.uc.Checkout(context.Background(), req, &key)
	s.Require().NoError(err)
	s.True(result.Replayed)
	s.Equal(view.ID, result.Order.ID)
}

// requestHash mirrors the engine's request fingerprint so replay tests
// can supply a matching stored hash.
func requestHash(t *testing.T, req any) string {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func orderLine(lessonID uuid.UUID, quantity int32) order.DraftLine {
	return order.DraftLine{LessonID: lessonID, Quantity: quantity}
}

// =============================================================================
// Oversell prevention under concurrency
// =============================================================================

// fakeLessonStore is an in-memory LessonRepository whose TryReserve is
// the same compare-and-decrement the SQL store performs, guarded by a
// mutex instead of a row lock.
type fakeLessonStore struct {
	mu         sync.Mutex
	available  map[uuid.UUID]int32
	capacity   map[uuid.UUID]int32
	priceCents int64
}

func newFakeLessonStore(priceCents int64) *fakeLessonStore {
	return &fakeLessonStore{
		available:  make(map[uuid.UUID]int32),
		capacity:   make(map[uuid.UUID]int32),
		priceCents: priceCents,
	}
}

func (f *fakeLessonStore) addLesson(id uuid.UUID, capacity int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.available[id] = capacity
	f.capacity[id] = capacity
}

func (f *fakeLessonStore) slots(id uuid.UUID) int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.available[id]
}

func (f *fakeLessonStore) Create(context.Context, *lesson.Lesson) (uuid.UUID, error) {
	panic("not used")
}

func (f *fakeLessonStore) Update(context.Context, uuid.UUID, commands.UpdateLessonFields) error {
	panic("not used")
}

func (f *fakeLessonStore) Delete(context.Context, uuid.UUID) error {
	panic("not used")
}

func (f *fakeLessonStore) TryReserve(_ context.Context, lessonID uuid.UUID, quantity int32) (*commands.ReservedSeat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	avail, ok := f.available[lessonID]
	if !ok {
		return nil, infra.WrapRepoErr("lesson not found", errors.New("no rows"), infra.KindNotFound)
	}
	if avail < quantity {
		return nil, infra.WrapRepoErr("insufficient capacity", errors.New("0 rows"), infra.KindInsufficientCapacity)
	}
	f.available[lessonID] = avail - quantity
	return &commands.ReservedSeat{LessonID: lessonID, Quantity: quantity, UnitPriceCents: f.priceCents}, nil
}

func (f *fakeLessonStore) Release(_ context.Context, lessonID uuid.UUID, quantity int32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	avail, ok := f.available[lessonID]
	if !ok {
		return infra.WrapRepoErr("lesson not found", errors.New("no rows"), infra.KindNotFound)
	}
	f.available[lessonID] = min(avail+quantity, f.capacity[lessonID])
	return nil
}

// fakeOrderStore records confirmed orders in memory.
type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*queries.OrderView
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]*queries.OrderView)}
}

func (f *fakeOrderStore) Create(_ context.Context, _ db.DBTX, o *order.Order, _ *uuid.UUID, _ string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := make([]queries.OrderLineView, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		lines = append(lines, queries.OrderLineView{
			LessonID:       l.LessonID(),
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPrice().Cents(),
		})
	}
	f.orders[o.ID()] = &queries.OrderView{
		ID:            o.ID(),
		CustomerName:  o.CustomerName(),
		CustomerPhone: o.CustomerPhone(),
		Lines:         lines,
		TotalCents:    o.Total().Cents(),
		Status:        string(o.Status()),
		CreatedAt:     o.CreatedAt(),
	}
	return o.ID(), nil
}

func (f *fakeOrderStore) FindByIdempotencyKey(context.Context, uuid.UUID) (*commands.IdempotencyRecord, error) {
	return nil, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id uuid.UUID) (*queries.OrderView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	view, ok := f.orders[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	return view, nil
}

func (f *fakeOrderStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

func TestCheckout_NeverOversellsUnderConcurrency(t *testing.T) {
	const (
		seats   = 7
		callers = 50
	)

	lessonID := uuid.New()
	lessons := newFakeLessonStore(4500)
	lessons.addLesson(lessonID, seats)
	orders := newFakeOrderStore()

	uc := commands.NewCheckoutCommands(lessons, orders, orders, fakeTxBeginner{}, clock.NewRealClock())

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := builder.NewOrderBuilder().
				WithLines(orderLine(lessonID, 1)).
				BuildCheckoutRequestDTO()
			_, err := uc.Checkout(context.Background(), req, nil)
			results[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, errs.ErrInsufficientCapacity)
	}

	assert.Equal(t, seats, succeeded, "exactly the available seats must be sold")
	assert.Equal(t, seats, orders.count())
	assert.Equal(t, int32(0), lessons.slots(lessonID))
}

func TestCheckout_FailedMultiLineLeavesNoNetConsumption(t *testing.T) {
	lessonA := uuid.New()
	lessonB := uuid.New()
	lessons := newFakeLessonStore(3000)
	lessons.addLesson(lessonA, 10)
	lessons.addLesson(lessonB, 1)
	orders := newFakeOrderStore()

	uc := commands.NewCheckoutCommands(lessons, orders, orders, fakeTxBeginner{}, clock.NewRealClock())

	req := builder.NewOrderBuilder().WithLines(
		orderLine(lessonA, 4),
		orderLine(lessonB, 3),
	).BuildCheckoutRequestDTO()

	_, err := uc.Checkout(context.Background(), req, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInsufficientCapacity)

	assert.Equal(t, int32(10), lessons.slots(lessonA), "reserved seats must be returned")
	assert.Equal(t, int32(1), lessons.slots(lessonB))
	assert.Equal(t, 0, orders.count())
}
