package errorx

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorBizError(t *testing.T) {
	src := New(CodeSearchTypeInvalid)

	got := FromError(src)
	require.NotNil(t, got)
	assert.Equal(t, CodeSearchTypeInvalid, got.Code)
}

func TestFromErrorUnwrapsCause(t *testing.T) {
	wrapped := errors.Wrap(New(CodeSearchTimeout), "logic 层补充上下文")

	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeSearchTimeout, got.Code)
}

func TestFromErrorHidesUnknownDetails(t *testing.T) {
	got := FromError(errors.New("sql: connection refused at 10.0.0.3"))
	require.NotNil(t, got)
	assert.Equal(t, CodeInternalError, got.Code)
	assert.NotContains(t, got.Message, "10.0.0.3", "内部细节不得透出")
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}

func TestIs(t *testing.T) {
	err := ErrSearchQueryTooShort()
	assert.True(t, Is(err, CodeSearchQueryTooShort))
	assert.False(t, Is(err, CodeSearchTimeout))
	assert.False(t, Is(nil, CodeSearchTimeout))
}

func TestWrapKeepsDefaultMessagePrefix(t *testing.T) {
	err := ErrDBError(errors.New("duplicate entry"))
	assert.Equal(t, CodeDBError, err.Code)
	assert.Contains(t, err.Message, GetMessage(CodeDBError))
	assert.Contains(t, err.Message, "duplicate entry")
}

func TestGetMessageUnknownCode(t *testing.T) {
	assert.Equal(t, "未知错误", GetMessage(99999))
	assert.False(t, IsValidCode(99999))
	assert.True(t, IsValidCode(CodeHistoryNotFound))
}
