package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = New("sentinel")

type codedError struct{ code string }

func (e *codedError) Error() string { return "coded " + e.code }

type coder interface{ Code() string }

func (e *codedError) Code() string { return e.code }

func TestWrap_PreservesIdentity(t *testing.T) {
	wrapped := Wrap(errSentinel, "outer")

	assert.True(t, Is(wrapped, errSentinel))
	assert.Equal(t, errSentinel, Cause(wrapped))
	assert.Equal(t, "outer: sentinel", wrapped.Error())
	assert.Equal(t, "outer: step 2: sentinel", Wrap(Wrapf(errSentinel, "step %d", 2), "outer").Error())
}

func TestWrap_NilStaysNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
	assert.NoError(t, WithStack(nil))
}

func TestJoin_MatchesEveryMember(t *testing.T) {
	other := New("other")
	joined := Join(errSentinel, other)

	assert.True(t, Is(joined, errSentinel))
	assert.True(t, Is(joined, other))
}

func TestFind(t *testing.T) {
	coded := &codedError{code: "E42"}

	t.Run("concrete type through wrappers", func(t *testing.T) {
		found, ok := Find[*codedError](Wrap(WithStack(coded), "outer"))
		require.True(t, ok)
		assert.Same(t, coded, found)
	})

	t.Run("interface type", func(t *testing.T) {
		found, ok := Find[coder](Join(errSentinel, Wrap(coded, "outer")))
		require.True(t, ok)
		assert.Equal(t, "E42", found.Code())
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := Find[*fs.PathError](Wrap(errSentinel, "outer"))
		assert.False(t, ok)
	})

	t.Run("nil error", func(t *testing.T) {
		found, ok := Find[*codedError](nil)
		assert.False(t, ok)
		assert.Nil(t, found)
	})
}
