package hash

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultCost takes roughly 100ms per hash on commodity hardware.
const DefaultCost = bcrypt.DefaultCost

// MaxPasswordBytes is the longest input bcrypt digests in full.
const MaxPasswordBytes = 72

// Hasher produces salted bcrypt digests. Hashing runs off the caller's
// goroutine and at most GOMAXPROCS digests are computed at once.
type Hasher struct {
	cost  int
	slots *semaphore.Weighted
	dummy []byte
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	h := &Hasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
	// Comparing against a real digest of the same cost keeps the miss path as
	// slow as the hit path.
	h.dummy, _ = bcrypt.GenerateFromPassword([]byte("records-auth-dummy"), cost)
	return h
}

func (h *Hasher) Cost() int { return h.cost }

func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	out, err := h.run(ctx, func() ([]byte, error) {
		return bcrypt.GenerateFromPassword([]byte(password), h.cost)
	})
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Verify reports whether password matches hash. A mismatch or a malformed hash
// is false with a nil error; only context expiry is returned as an error.
// Passwords over MaxPasswordBytes never match: bcrypt would only look at
// their prefix.
func (h *Hasher) Verify(ctx context.Context, hash, password string) (bool, error) {
	tooLong := len(password) > MaxPasswordBytes
	if tooLong {
		password = password[:MaxPasswordBytes]
	}
	_, err := h.run(ctx, func() ([]byte, error) {
		return nil, bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	})
	switch {
	case err == nil:
		return !tooLong, nil
	case ctx.Err() != nil:
		return false, err
	default:
		return false, nil
	}
}

// Burn spends the same time as a failed Verify without checking anything.
func (h *Hasher) Burn(ctx context.Context, password string) error {
	_, err := h.Verify(ctx, string(h.dummy), password)
	return err
}

type result struct {
	out []byte
	err error
}

func (h *Hasher) run(ctx context.Context, fn func() ([]byte, error)) ([]byte, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	done := make(chan result, 1)
	go func() {
		defer h.slots.Release(1)
		out, err := fn()
		done <- result{out: out, err: err}
	}()

	select {
	case r := <-done:
		return r.out, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
