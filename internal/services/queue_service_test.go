package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xvierd/timerdeck/internal/domain"
)

func queueTexts(items []domain.TaskQueueItem) []string {
	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Text
	}
	return texts
}

func TestQueueService(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)
	svc := NewQueueService(store.Queue())
	require.NoError(t, svc.Load(ctx))

	_, ok := svc.Active()
	assert.False(t, ok)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Enqueue(ctx, text)
		require.NoError(t, err)
	}

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := svc.Enqueue(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskText)
		assert.Len(t, svc.List(), 3)
	})

	t.Run("promote keeps relative order", func(t *testing.T) {
		require.NoError(t, svc.Promote(ctx, 2))
		assert.Equal(t, []string{"three", "one", "two"}, queueTexts(svc.List()))
		assert.ErrorIs(t, svc.Promote(ctx, 3), domain.ErrQueueIndex)
		assert.ErrorIs(t, svc.Promote(ctx, -1), domain.ErrQueueIndex)
	})

	t.Run("edit", func(t *testing.T) {
		got, err := svc.Edit(ctx, 1, " uno ")
		require.NoError(t, err)
		assert.Equal(t, "uno", got.Text)

		got, err = svc.Edit(ctx, 1, "")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskText)
		assert.Equal(t, "uno", got.Text)
	})

	t.Run("remove", func(t *testing.T) {
		removed, err := svc.Remove(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, "two", removed.Text)
		_, err = svc.Remove(ctx, 5)
		assert.ErrorIs(t, err, domain.ErrQueueIndex)
	})

	t.Run("pop and persist", func(t *testing.T) {
		head, err := svc.PopActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "three", head.Text)

		reloaded := NewQueueService(store.Queue())
		require.NoError(t, reloaded.Load(ctx))
		assert.Equal(t, []string{"uno"}, queueTexts(reloaded.List()))

		_, err = svc.PopActive(ctx)
		require.NoError(t, err)
		_, err = svc.PopActive(ctx)
		assert.ErrorIs(t, err, domain.ErrQueueEmpty)
	})
}
