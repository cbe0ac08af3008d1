package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/wayfarer/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore implementation
// adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID)
		session.Auth = domain.SignedIn("asha")
		require.NoError(t, session.PutRecord(domain.RecordStep1, domain.Step1Data{Destination: "Andaman"}))
		require.NoError(t, session.PutRecord(domain.RecordStep2, domain.Step2Data{Interests: []string{"Beaches 🏖️"}}))
		session.Step.Status = domain.StatusReady
		session.Step.Selection = []string{"Radhanagar Beach", "Elephant Beach"}

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, session.Auth, loaded.Auth)
		assert.Equal(t, domain.StatusReady, loaded.Step.Status)
		assert.Equal(t, session.Step.Selection, loaded.Step.Selection)

		// Records may come back as generic JSON values; the typed view must survive.
		var step2 domain.Step2Data
		ok, err := loaded.Record(domain.RecordStep2, &step2)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"Beaches 🏖️"}, step2.Interests)
	})

	t.Run("Stored copy is isolated", func(t *testing.T) {
		session := domain.NewSession(sessionID)
		session.Step.Selection = []string{"a"}
		require.NoError(t, store.Save(ctx, sessionID, session))

		session.Step.Selection[0] = "mutated"

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, loaded.Step.Selection)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1))
		_ = store.Save(ctx, id2, domain.NewSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
