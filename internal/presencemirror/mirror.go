package presencemirror

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Mirror reflects online display names into redis so operators and
// sibling services can observe presence. The in-process registry stays
// the source of truth; the mirror is advisory and a nil Mirror is a
// no-op.
type Mirror struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, prefix string, ttl time.Duration) *Mirror {
	return &Mirror{client: client, prefix: prefix, ttl: ttl}
}

func (m *Mirror) key(peer string) string { return m.prefix + ":online:" + peer }

func (m *Mirror) Online(ctx context.Context, peer, name string) error {
	if m == nil {
		return nil
	}
	return m.client.Set(ctx, m.key(peer), name, m.ttl).Err()
}

// Refresh extends the TTL on activity so idle-but-connected peers do
// not fall out of the mirror.
func (m *Mirror) Refresh(ctx context.Context, peer string) error {
	if m == nil {
		return nil
	}
	return m.client.Expire(ctx, m.key(peer), m.ttl).Err()
}

func (m *Mirror) Offline(ctx context.Context, peer string) error {
	if m == nil {
		return nil
	}
	return m.client.Del(ctx, m.key(peer)).Err()
}
