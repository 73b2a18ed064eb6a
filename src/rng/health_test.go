package rng_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sapessi/nearly-divisionless-rand/src/rng"
)

func TestHealthCheckRNG_AllSameFails(t *testing.T) {
	h := rng.NewHealth()
	r := bytes.NewReader(make([]byte, 256))
	if err := rng.HealthCheckRNG(r, h); err == nil {
		t.Fatalf("expected error for all-identical sample")
	}
}

func TestHealthCheckRNG_RepeatingWordsFail(t *testing.T) {
	// The same 8-byte pattern over and over: individual bytes vary, but
	// every 64-bit word is identical, which is what the sampler consumes.
	buf := make([]byte, 256)
	pattern := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	for i := 0; i < len(buf); i++ {
		buf[i] = pattern[i%8]
	}

	err := rng.HealthCheckRNG(bytes.NewReader(buf), rng.NewHealth())
	require.Error(t, err)
}

func TestHealthCheckRNG_TruncatedSourceFails(t *testing.T) {
	err := rng.HealthCheckRNG(bytes.NewReader([]byte{1, 2, 3}), rng.NewHealth())
	require.Error(t, err)
}

func TestHealthCheckRNG_OKOnVariedBytes(t *testing.T) {
	h := rng.NewHealth()
	buf := make([]byte, 256)
	for i := 0; i < len(buf); i++ {
		buf[i] = byte(i)
	}
	r := bytes.NewReader(buf)
	if err := rng.HealthCheckRNG(r, h); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHealth_Snapshot(t *testing.T) {
	h := rng.NewHealth()

	ok, _, _ := h.Snapshot()
	require.False(t, ok, "monitor starts unhealthy until first successful check")

	h.Set(true, "")
	ok, msg, at := h.Snapshot()
	require.True(t, ok)
	require.Empty(t, msg)
	require.False(t, at.IsZero())

	h.Set(false, "device unplugged")
	ok, msg, _ = h.Snapshot()
	require.False(t, ok)
	require.Equal(t, "device unplugged", msg)
}
