//go:build unit

package order_test

import (
	"testing"
	"time"

	"lessonbook/internal/domain/order"
	"lessonbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draftCase struct {
	name   string
	mutate func(*builder.OrderBuilder)
	errIs  error
}

func TestNewDraft(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		draft, err := builder.NewOrderBuilder().BuildDraft()
		require.NoError(t, err)
		require.NotNil(t, draft)

		assert.Equal(t, "Taro Yamada", draft.CustomerName())
		assert.Equal(t, "090-1234-5678", draft.CustomerPhone())
		assert.Len(t, draft.Lines(), 1)
	})

	t.Run("customer validation", func(t *testing.T) {
		runDraftCases(t, []draftCase{
			{
				name:   "empty customer name",
				mutate: func(b *builder.OrderBuilder) { b.WithCustomerName("") },
				errIs:  order.ErrEmptyCustomerName,
			},
			{
				name:   "whitespace only customer name",
				mutate: func(b *builder.OrderBuilder) { b.WithCustomerName("   ") },
				errIs:  order.ErrEmptyCustomerName,
			},
			{
				name:   "empty customer phone",
				mutate: func(b *builder.OrderBuilder) { b.WithCustomerPhone("") },
				errIs:  order.ErrEmptyCustomerPhone,
			},
		})
	})

	t.Run("line validation", func(t *testing.T) {
		lessonID := uuid.New()
		runDraftCases(t, []draftCase{
			{
				name:   "no lines",
				mutate: func(b *builder.OrderBuilder) { b.WithLines() },
				errIs:  order.ErrNoLines,
			},
			{
				name: "zero quantity",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.DraftLine{LessonID: lessonID, Quantity: 0})
				},
				errIs: order.ErrInvalidQuantity,
			},
			{
				name: "negative quantity",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(order.DraftLine{LessonID: lessonID, Quantity: -1})
				},
				errIs: order.ErrInvalidQuantity,
			},
			{
				name: "duplicate lesson across lines",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(
						order.DraftLine{LessonID: lessonID, Quantity: 1},
						order.DraftLine{LessonID: lessonID, Quantity: 2},
					)
				},
				errIs: order.ErrDuplicateLesson,
			},
			{
				name: "distinct lessons are allowed",
				mutate: func(b *builder.OrderBuilder) {
					b.WithLines(
						order.DraftLine{LessonID: uuid.New(), Quantity: 1},
						order.DraftLine{LessonID: uuid.New(), Quantity: 3},
					)
				},
			},
		})
	})

	t.Run("trims customer fields", func(t *testing.T) {
		draft, err := builder.NewOrderBuilder().
			WithCustomerName("  Hanako Sato  ").
			WithCustomerPhone("  080-0000-1111  ").
			BuildDraft()
		require.NoError(t, err)

		assert.Equal(t, "Hanako Sato", draft.CustomerName())
		assert.Equal(t, "080-0000-1111", draft.CustomerPhone())
	})
}

func TestDraftConfirm(t *testing.T) {
	lessonA := uuid.New()
	lessonB := uuid.New()
	now := time.Now()

	newDraft := func(t *testing.T) *order.Draft {
		t.Helper()
		draft, err := order.NewDraft("Taro Yamada", "090-1234-5678", []order.DraftLine{
			{LessonID: lessonA, Quantity: 2},
			{LessonID: lessonB, Quantity: 1},
		})
		require.NoError(t, err)
		return draft
	}

	pricedLine := func(t *testing.T, lessonID uuid.UUID, quantity int32, cents int64) order.Line {
		t.Helper()
		price, err := order.NewMoney(cents)
		require.NoError(t, err)
		line, err := order.NewLine(lessonID, quantity, price)
		require.NoError(t, err)
		return line
	}

	t.Run("computes total across lines", func(t *testing.T) {
		draft := newDraft(t)
		confirmed, err := draft.Confirm(uuid.New(), []order.Line{
			pricedLine(t, lessonA, 2, 4500),
			pricedLine(t, lessonB, 1, 3000),
		}, now)
		require.NoError(t, err)

		assert.Equal(t, order.StatusConfirmed, confirmed.Status())
		assert.Equal(t, int64(12000), confirmed.Total().Cents())
		assert.Equal(t, now, confirmed.CreatedAt())
		assert.Len(t, confirmed.Lines(), 2)
	})

	t.Run("rejects missing priced line", func(t *testing.T) {
		draft := newDraft(t)
		_, err := draft.Confirm(uuid.New(), []order.Line{
			pricedLine(t, lessonA, 2, 4500),
		}, now)
		assert.ErrorIs(t, err, order.ErrLineCountMismatch)
	})

	t.Run("rejects reordered priced lines", func(t *testing.T) {
		draft := newDraft(t)
		_, err := draft.Confirm(uuid.New(), []order.Line{
			pricedLine(t, lessonB, 1, 3000),
			pricedLine(t, lessonA, 2, 4500),
		}, now)
		assert.ErrorIs(t, err, order.ErrLineCountMismatch)
	})

	t.Run("rejects quantity drift", func(t *testing.T) {
		draft := newDraft(t)
		_, err := draft.Confirm(uuid.New(), []order.Line{
			pricedLine(t, lessonA, 3, 4500),
			pricedLine(t, lessonB, 1, 3000),
		}, now)
		assert.ErrorIs(t, err, order.ErrLineCountMismatch)
	})
}

func TestMoney(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := order.NewMoney(-1)
		assert.ErrorIs(t, err, order.ErrNegativeAmount)
	})

	t.Run("line total multiplies unit price", func(t *testing.T) {
		price, err := order.NewMoney(2500)
		require.NoError(t, err)
		line, err := order.NewLine(uuid.New(), 4, price)
		require.NoError(t, err)

		assert.Equal(t, int64(10000), line.Total().Cents())
	})

	t.Run("zero is valid", func(t *testing.T) {
		m, err := order.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), m.Cents())
	})
}

func runDraftCases(t *testing.T, cases []draftCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			draft, err := builder.NewOrderBuilder().With(c.mutate).BuildDraft()
			if c.errIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, c.errIs)
				assert.Nil(t, draft)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, draft)
		})
	}
}
