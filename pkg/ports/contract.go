package ports

import (
	"context"
	"testing"
	"time"

	"github.com/surveyflow/surveyflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(sessionID, "pests")
		session.State.Answers["crop"] = "corn"
		session.State.Answers["notes"] = ""
		session.State.Visited = []string{"crop", "corn_area", "crop", "pests"}
		session.State.Queue = []string{"weeds_detail", "insects_detail"}

		err := store.Save(ctx, sessionID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.ID)
		assert.Equal(t, "pests", loaded.CurrentID)
		assert.Equal(t, domain.StatusActive, loaded.Status)
		assert.Equal(t, map[string]string{"crop": "corn", "notes": ""}, loaded.State.Answers)
		assert.Equal(t, []string{"crop", "corn_area", "crop", "pests"}, loaded.State.Visited, "visited order must survive")
		assert.Equal(t, []string{"weeds_detail", "insects_detail"}, loaded.State.Queue, "queue order must survive")
	})

	t.Run("Overwrite", func(t *testing.T) {
		session := domain.NewSession(sessionID, "crop")
		require.NoError(t, store.Save(ctx, sessionID, session))

		session.CurrentID = ""
		session.Status = domain.StatusCompleted
		require.NoError(t, store.Save(ctx, sessionID, session))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, loaded.Status)
		assert.Empty(t, loaded.CurrentID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewSession(sessionID, "crop"))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, sessionID), "deleting twice is not an error")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1, "crop"))
		_ = store.Save(ctx, id2, domain.NewSession(id2, "crop"))

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
