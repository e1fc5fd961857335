//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"lessonbook/internal/infra"
	"lessonbook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark_SentinelVisibleToStdlibErrorsIs(t *testing.T) {
	cause := infra.WrapRepoErr("not enough available slots", errors.New("0 rows"), infra.KindInsufficientCapacity)
	marked := errs.Mark(cause, errs.ErrInsufficientCapacity)

	assert.ErrorIs(t, marked, errs.ErrInsufficientCapacity)
	assert.True(t, errs.Is(marked, errs.ErrInsufficientCapacity))
	assert.NotErrorIs(t, marked, errs.ErrLessonNotFound)
}

func TestMark_KeepsCauseOnUnwrapChain(t *testing.T) {
	cause := errors.New("no rows")
	marked := errs.Mark(errs.Wrap(cause, "failed to reserve seats"), errs.ErrLessonNotFound)

	assert.ErrorIs(t, marked, cause)

	var repoErr infra.RepositoryError
	wrapped := errs.Mark(infra.WrapRepoErr("lesson not found", cause, infra.KindNotFound), errs.ErrLessonNotFound)
	require.ErrorAs(t, wrapped, &repoErr)
	assert.True(t, infra.IsKind(wrapped, infra.KindNotFound))
}

func TestMark_RemarkedChainMatchesEverySentinel(t *testing.T) {
	marked := errs.Mark(errs.Mark(errors.New("boom"), errs.ErrDatabaseOperationFailed), errs.ErrOrderNotFound)

	assert.ErrorIs(t, marked, errs.ErrOrderNotFound)
	assert.ErrorIs(t, marked, errs.ErrDatabaseOperationFailed)
}

func TestMark_NilCauseReturnsSentinelItself(t *testing.T) {
	err := errs.Mark(nil, errs.ErrDomainValidation)
	assert.ErrorIs(t, err, errs.ErrDomainValidation)
}
