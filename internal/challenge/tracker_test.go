package challenge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddIsIdempotent(t *testing.T) {
	tr := NewTracker()
	tr.Add("Q?")
	tr.Add("Q?")

	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, []string{"Q?"}, tr.Unresolved())
}

func TestUnresolvedKeepsInsertionOrder(t *testing.T) {
	tr := NewTracker()
	tr.Add("third?")
	tr.Add("first?")
	tr.Add("second?")

	require.NoError(t, tr.Answer("first?", "yes"))

	assert.Equal(t, []string{"third?", "second?"}, tr.Unresolved())
}

func TestAnswer(t *testing.T) {
	t.Run("unknown question is ignored", func(t *testing.T) {
		tr := NewTracker()
		tr.Add("Q?")

		require.NoError(t, tr.Answer("other?", "A"))
		assert.Equal(t, 1, tr.Len())
		assert.Equal(t, []string{"Q?"}, tr.Unresolved())
	})

	t.Run("strict tracker reports unknown question", func(t *testing.T) {
		tr := NewTracker(WithStrict())

		err := tr.Answer("other?", "A")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownChallenge))
		assert.Equal(t, 0, tr.Len())
	})

	t.Run("empty answer leaves question unresolved", func(t *testing.T) {
		tr := NewTracker()
		tr.Add("Q?")

		require.NoError(t, tr.Answer("Q?", ""))
		assert.Equal(t, []string{"Q?"}, tr.Unresolved())
	})
}

func TestFormatUnresolved(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, "", tr.FormatUnresolved())

	tr.Add("Q?")
	tr.Add("R?")

	want := "The following points need confirmation before legal analysis:\n" +
		"1. Q?\n" +
		"2. R?\n" +
		"Please clarify or correct these items."
	assert.Equal(t, want, tr.FormatUnresolved())

	require.NoError(t, tr.Answer("Q?", "A"))
	assert.Contains(t, tr.FormatUnresolved(), "1. R?")
	assert.NotContains(t, tr.FormatUnresolved(), "Q?")

	require.NoError(t, tr.Answer("R?", "B"))
	assert.Equal(t, "", tr.FormatUnresolved())
}

func TestRestore(t *testing.T) {
	tr := Restore([]Challenge{
		{Question: "a?", Answer: "x"},
		{Question: "b?"},
		{Question: "a?"},
	})

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []string{"b?"}, tr.Unresolved())

	snap := tr.Challenges()
	snap[0].Answer = ""
	assert.Equal(t, []string{"b?"}, tr.Unresolved(), "snapshot must not alias tracker state")
}
