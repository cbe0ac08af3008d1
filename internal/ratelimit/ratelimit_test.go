package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow_Burst(t *testing.T) {
	krl := New(1, 3)
	defer krl.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, krl.Allow("10.0.0.1"), "request %d within burst", i)
	}
	assert.False(t, krl.Allow("10.0.0.1"), "burst exhausted")
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("a"))
	assert.False(t, krl.Allow("a"))
	assert.True(t, krl.Allow("b"))
}

func TestPrune_DropsIdleKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	krl.now = func() time.Time { return now }

	krl.Allow("old")
	now = now.Add(DefaultIdleTTL + time.Second)
	krl.Allow("fresh")

	krl.Prune()
	assert.Equal(t, 1, krl.Len())
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	assert.NotPanics(t, krl.Stop)
}
