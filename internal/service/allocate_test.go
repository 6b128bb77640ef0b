package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateCardNumberWidth(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{5}$`)
	for i := 0; i < 200; i++ {
		n, err := GenerateCardNumber()
		require.NoError(t, err)
		require.True(t, pattern.MatchString(n), "candidate %q is not five digits", n)
	}
}

func TestAllocateWithRetrySucceedsOnLastAttempt(t *testing.T) {
	calls := 0
	gen := func() (string, error) {
		calls++
		return "10000", nil
	}
	// First 9 candidates are taken, the 10th is free.
	checks := 0
	taken := func(ctx context.Context, cand string) (bool, error) {
		checks++
		return checks < 10, nil
	}

	got, err := AllocateWithRetry(context.Background(), 10, gen, taken)
	require.NoError(t, err)
	require.Equal(t, "10000", got)
	require.Equal(t, 10, calls)
	require.Equal(t, 10, checks)
}

func TestAllocateWithRetryExhausted(t *testing.T) {
	gen := func() (string, error) { return "10000", nil }
	taken := func(ctx context.Context, cand string) (bool, error) { return true, nil }

	_, err := AllocateWithRetry(context.Background(), 10, gen, taken)
	require.ErrorIs(t, err, ErrAllocationExhausted)
}

func TestAllocateWithRetryLookupFailureAborts(t *testing.T) {
	boom := errors.New("connection reset")
	checks := 0
	gen := func() (string, error) { return "10000", nil }
	taken := func(ctx context.Context, cand string) (bool, error) {
		checks++
		return false, boom
	}

	_, err := AllocateWithRetry(context.Background(), 10, gen, taken)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, checks, "a lookup failure must not be retried")
}
