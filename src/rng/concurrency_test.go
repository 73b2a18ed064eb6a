package rng_test

import (
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/sapessi/nearly-divisionless-rand/src/rng"
)

// byteCycleReader returns deterministic bytes cycling through 0..255.
// It is NOT safe for concurrent use without a lock.
type byteCycleReader struct {
	b byte
}

func (r *byteCycleReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func TestLockedReader_ConcurrentBoundedDraws(t *testing.T) {
	raw := &byteCycleReader{b: 0}
	locked := rng.NewLockedReader(raw)

	// The sampler holds no shared state; the only coordination required is
	// serializing reads on the shared source.
	const goroutines = 50
	const perG = 2000

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < perG; j++ {
				v, err := rng.Uint64n(locked, nil, 52)
				if err != nil {
					return err
				}
				if v >= 52 {
					t.Errorf("out-of-range value %d", v)
				}

				n, err := rng.UniformInt64(locked, nil, -10, 10)
				if err != nil {
					return err
				}
				if n < -10 || n > 10 {
					t.Errorf("out-of-range value %d", n)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewLockedReader_Idempotent(t *testing.T) {
	raw := &byteCycleReader{b: 0}
	locked := rng.NewLockedReader(raw)

	if rng.NewLockedReader(locked) != locked {
		t.Fatal("wrapping a LockedReader should return it unchanged")
	}
	if rng.NewLockedReader(nil) != nil {
		t.Fatal("nil reader should stay nil")
	}
}
