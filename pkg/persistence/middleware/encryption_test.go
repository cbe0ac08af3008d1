package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/wayfarer/pkg/adapters/memory"
	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/persistence/middleware"
	"github.com/aretw0/wayfarer/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, k); err != nil {
		t.Fatal(err)
	}
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunSessionStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlyingStore := NewMockStore()
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	secureStore := mw(underlyingStore)

	ctx := context.Background()
	sessionID := "test-session"
	original := domain.NewSession(sessionID)
	original.Auth = domain.SignedIn("asha")
	require.NoError(t, original.PutRecord(domain.RecordStep1, domain.Step1Data{Destination: "Chikmagalur"}))

	require.NoError(t, secureStore.Save(ctx, sessionID, original))

	stored, err := underlyingStore.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.NotContains(t, stored.Records, domain.RecordStep1, "records must be hidden")
	assert.Contains(t, stored.Records, middleware.EnvelopeKey)
	assert.False(t, stored.Auth.Authenticated, "auth must be hidden")

	loaded, err := secureStore.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "asha", loaded.Auth.UserName)

	var step1 domain.Step1Data
	ok, err := loaded.Record(domain.RecordStep1, &step1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Chikmagalur", step1.Destination)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlyingStore := NewMockStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)

	secureStoreOld := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(underlyingStore)

	ctx := context.Background()
	sessionID := "rotation-session"
	original := domain.NewSession(sessionID)
	original.Auth = domain.SignedIn("old")

	require.NoError(t, secureStoreOld.Save(ctx, sessionID, original))

	secureStoreNew := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(underlyingStore)

	loaded, err := secureStoreNew.Load(ctx, sessionID)
	require.NoError(t, err, "fallback key must decrypt")
	assert.Equal(t, "old", loaded.Auth.UserName)

	loaded.Auth = domain.SignedIn("new")
	require.NoError(t, secureStoreNew.Save(ctx, sessionID, loaded))

	_, err = secureStoreOld.Load(ctx, sessionID)
	assert.Error(t, err, "old key alone cannot read data written with the new key")
}

func TestEncryptionMiddleware_BoundToSessionID(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	ctx := context.Background()

	require.NoError(t, secureStore.Save(ctx, "victim", domain.NewSession("victim")))

	// Copy the ciphertext under another ID.
	stolen, err := underlyingStore.Load(ctx, "victim")
	require.NoError(t, err)
	require.NoError(t, underlyingStore.Save(ctx, "attacker", stolen))

	_, err = secureStore.Load(ctx, "attacker")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_PlainSessionRejected(t *testing.T) {
	underlyingStore := NewMockStore()
	require.NoError(t, underlyingStore.Save(context.Background(), "plain", domain.NewSession("plain")))

	secureStore := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlyingStore)
	_, err := secureStore.Load(context.Background(), "plain")
	assert.ErrorIs(t, err, middleware.ErrMissingEnvelope)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	assert.Panics(t, func() {
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	})
}
