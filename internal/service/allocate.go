package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

// Arrival-card numbers are five digits, drawn uniformly from
// [10000, 99999]. The space is small enough that collisions against
// already-issued cards are plausible, so every candidate is checked
// against durable storage before being committed.
const (
	cardNumberMin  = 10000
	cardNumberSpan = 90000
)

// GenerateCardNumber draws one uniform five-digit candidate using
// crypto/rand.
func GenerateCardNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(cardNumberSpan))
	if err != nil {
		return "", fmt.Errorf("card number draw: %w", err)
	}
	return strconv.FormatInt(n.Int64()+cardNumberMin, 10), nil
}

// AllocateWithRetry is the bounded-retry combinator behind card-number
// allocation: draw a candidate with gen, ask taken whether it is already
// in use, and commit to the first free one. A taken() error aborts
// immediately; only a clean "already in use" answer triggers a redraw.
// When attempts candidates in a row are taken, ErrAllocationExhausted is
// returned.
func AllocateWithRetry(ctx context.Context, attempts int, gen func() (string, error), taken func(context.Context, string) (bool, error)) (string, error) {
	for i := 0; i < attempts; i++ {
		candidate, err := gen()
		if err != nil {
			return "", err
		}
		inUse, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
	return "", ErrAllocationExhausted
}
