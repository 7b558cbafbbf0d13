package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestSessionKey(t *testing.T) {
	assert.Equal(t, "admin_session:abc", sessionKey("abc"))
}

func TestRedisStoreUnreachableIsNotMissing(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewRedisStore(client)

	_, err := store.Find(context.Background(), "abc")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound), "an outage must not look like a missing session")
}
