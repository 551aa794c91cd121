package linkstore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sealnote/sealnote/internal/envelope"
)

func newTestStore() *Store {
	return NewStore(10*time.Millisecond, zap.NewNop())
}

func TestCreateThenGetDecrypts(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	created, k, err := store.Create("hunter2", "db password", time.Minute, 3)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Len(t, k, 32)

	link, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, link.RemainingUses)

	plaintext, err := envelope.Decrypt(k, link.Envelope)
	require.NoError(t, err)

	var payload Payload
	require.NoError(t, json.Unmarshal(plaintext, &payload))
	assert.Equal(t, "hunter2", payload.Password)
	assert.Equal(t, "db password", payload.Note)
}

func TestGetDoesNotConsume(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	created, _, err := store.Create("hunter2", "", time.Minute, 2)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		link, err := store.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, link.RemainingUses)
	}
}

func TestConsumeUntilExhausted(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	const useCount = 3
	created, _, err := store.Create("hunter2", "", time.Minute, useCount)
	require.NoError(t, err)

	for i := useCount - 1; i >= 0; i-- {
		remaining, err := store.Consume(created.ID)
		require.NoError(t, err)
		assert.Equal(t, i, remaining)
	}

	_, err = store.Consume(created.ID)
	assert.ErrorIs(t, err, ErrLinkGone)
}

func TestConsumedLinkRemovedAfterGrace(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	created, _, err := store.Create("hunter2", "", time.Minute, 1)
	require.NoError(t, err)

	_, err = store.Consume(created.ID)
	require.NoError(t, err)

	// within the grace window the entry still exists but reads report gone
	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrLinkGone)

	assert.Eventually(t, func() bool {
		return store.Len() == 0
	}, time.Second, 5*time.Millisecond)

	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestExpiredLinkGoneThenNotFound(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	created, _, err := store.Create("hunter2", "", -time.Second, 1)
	require.NoError(t, err)

	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrLinkGone)

	// the expired entry was removed by the failed read
	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, ErrLinkNotFound)

	created, _, err = store.Create("hunter2", "", -time.Second, 1)
	require.NoError(t, err)

	_, err = store.Consume(created.ID)
	assert.ErrorIs(t, err, ErrLinkGone)
}

func TestUnknownLinkNotFound(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	_, err := store.Get("0123456789abcdef")
	assert.ErrorIs(t, err, ErrLinkNotFound)

	_, err = store.Consume("0123456789abcdef")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	_, _, err := store.Create("expired", "", -time.Second, 1)
	require.NoError(t, err)
	fresh, _, err := store.Create("fresh", "", time.Minute, 1)
	require.NoError(t, err)

	removed := store.Sweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestConcurrentConsumeAtMostUseCount(t *testing.T) {
	store := newTestStore()
	defer store.Close()

	const useCount = 5
	created, _, err := store.Create("hunter2", "", time.Minute, useCount)
	require.NoError(t, err)

	results := make(chan error, useCount*4)
	for i := 0; i < useCount*4; i++ {
		go func() {
			_, err := store.Consume(created.ID)
			results <- err
		}()
	}

	succeeded := 0
	for i := 0; i < useCount*4; i++ {
		if err := <-results; err == nil {
			succeeded++
		}
	}

	assert.Equal(t, useCount, succeeded)
}
