package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPollVote(t *testing.T) {
	poll := &Poll{
		Status:  PollActive,
		Options: Array[string]{"yes", "no"},
	}

	require.Error(t, poll.Vote(42, -1))
	require.Error(t, poll.Vote(42, 2))

	require.NoError(t, poll.Vote(42, 0))
	require.NoError(t, poll.Vote(43, 1))

	// A later vote by the same voter overwrites the earlier one.
	require.NoError(t, poll.Vote(42, 1))
	require.Equal(t, []int{0, 2}, poll.Tally())
}

func TestPollCloseIdempotent(t *testing.T) {
	poll := &Poll{Status: PollActive, Options: Array[string]{"a", "b"}}

	require.False(t, poll.Close())
	require.True(t, poll.Close())
	require.Error(t, poll.Vote(42, 0))
}
