package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/aretw0/wayfarer/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewPIIMiddleware([]string{"password", "phone"})(underlyingStore)

	ctx := context.Background()
	sessionID := "pii-session"
	session := domain.NewSession(sessionID)
	session.Auth = domain.SignedIn("Asha")

	session.Records["contact"] = map[string]any{
		"email":        "asha@example.com",
		"phone_number": "+91 99999 99999",
		"history": []any{
			map[string]any{"password": "hunter2"},
		},
	}
	session.Records["user_password"] = "secret123"
	session.Records["safe_data"] = "public"

	require.NoError(t, secureStore.Save(ctx, sessionID, session))

	assert.Equal(t, "secret123", session.Records["user_password"], "in-memory session must not be modified")
	contact := session.Records["contact"].(map[string]any)
	assert.Equal(t, "+91 99999 99999", contact["phone_number"])

	stored, err := underlyingStore.Load(ctx, sessionID)
	require.NoError(t, err)

	assert.Equal(t, middleware.Mask, stored.Records["user_password"])
	assert.Equal(t, "public", stored.Records["safe_data"])

	storedContact := stored.Records["contact"].(map[string]any)
	assert.Equal(t, "asha@example.com", storedContact["email"])
	assert.Equal(t, middleware.Mask, storedContact["phone_number"])
	nested := storedContact["history"].([]any)[0].(map[string]any)
	assert.Equal(t, middleware.Mask, nested["password"])

	assert.Equal(t, "Asha", stored.Auth.UserName, "user name kept unless a pattern targets it")
}

func TestPIIMiddleware_UserName(t *testing.T) {
	underlyingStore := NewMockStore()
	secureStore := middleware.NewPIIMiddleware([]string{"^user_name$"})(underlyingStore)

	session := domain.NewSession("s")
	session.Auth = domain.SignedIn("Asha")
	require.NoError(t, secureStore.Save(context.Background(), "s", session))

	stored, err := underlyingStore.Load(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, stored.Auth.UserName)
	assert.True(t, stored.Auth.Authenticated)
	assert.Equal(t, "Asha", session.Auth.UserName)
}

func TestChain_Order(t *testing.T) {
	underlyingStore := NewMockStore()
	store := middleware.Chain(underlyingStore,
		middleware.NewPIIMiddleware([]string{"^user_name$"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)

	session := domain.NewSession("s")
	session.Auth = domain.SignedIn("Asha")
	require.NoError(t, store.Save(context.Background(), "s", session))

	// PII runs first, so the decrypted copy is already masked.
	loaded, err := store.Load(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, loaded.Auth.UserName)
}
