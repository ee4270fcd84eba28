package pkg

import (
	"context"
	"testing"
	"time"

	"madrese/auth-service/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketStore(t *testing.T) {
	redisClient, mr := testutils.SetupTestRedis(t)
	store := NewTicketStore(redisClient, 30*time.Minute)
	ctx := context.Background()

	ticket, err := store.Save(ctx, "09123456789")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket)

	phone, err := store.Get(ctx, ticket)
	require.NoError(t, err)
	assert.Equal(t, "09123456789", phone)

	require.NoError(t, store.Delete(ctx, ticket))
	_, err = store.Get(ctx, ticket)
	assert.ErrorIs(t, err, ErrTicketNotFound)

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	expiring, err := store.Save(ctx, "09120000000")
	require.NoError(t, err)
	mr.FastForward(31 * time.Minute)
	_, err = store.Get(ctx, expiring)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}
