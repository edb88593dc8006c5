package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectParsesURLAndHostPort(t *testing.T) {
	client, err := Connect(context.Background(), "redis://:secret@cache.internal:6380/2")
	require.NoError(t, err)
	opts := client.Options()
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 2, opts.DB)
	_ = client.Close()

	client, err = Connect(context.Background(), "localhost:6379")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", client.Options().Addr)
	_ = client.Close()

	_, err = Connect(context.Background(), "redis://host:notaport")
	assert.Error(t, err)
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	c := NewRedisCache(nil, "marketplace")
	assert.Equal(t, "marketplace:campaign:1", c.key("campaign:1"))
	assert.Equal(t, "campaign:1", NewRedisCache(nil, "").key("campaign:1"))
}

func TestNoopCacheNeverHits(t *testing.T) {
	ctx := context.Background()
	var c NoopCache
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
	n, err := c.IncrWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)
}

// pipelineRecorder answers pipelined commands locally and records each batch.
type pipelineRecorder struct {
	batches [][]redis.Cmder
	counter int64
}

func (p *pipelineRecorder) DialHook(next redis.DialHook) redis.DialHook { return next }

func (p *pipelineRecorder) ProcessHook(next redis.ProcessHook) redis.ProcessHook { return next }

func (p *pipelineRecorder) ProcessPipelineHook(redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(_ context.Context, cmds []redis.Cmder) error {
		p.batches = append(p.batches, cmds)
		for _, cmd := range cmds {
			if incr, ok := cmd.(*redis.IntCmd); ok && cmd.Name() == "incr" {
				p.counter++
				incr.SetVal(p.counter)
			}
		}
		return nil
	}
}

func TestIncrWithTTLSendsCounterAndExpiryTogether(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = client.Close() })
	rec := &pipelineRecorder{}
	client.AddHook(rec)
	c := NewRedisCache(client, "marketplace")

	n, err := c.IncrWithTTL(context.Background(), "apply-rate:u1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = c.IncrWithTTL(context.Background(), "apply-rate:u1", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.Len(t, rec.batches, 2)
	var names []string
	var expireArgs []any
	for _, cmd := range rec.batches[0] {
		names = append(names, cmd.Name())
		if cmd.Name() == "expire" {
			expireArgs = cmd.Args()
		}
	}
	assert.Subset(t, names, []string{"incr", "expire"})
	require.NotEmpty(t, expireArgs)
	assert.Equal(t, "marketplace:apply-rate:u1", expireArgs[1])
	assert.Equal(t, "nx", expireArgs[len(expireArgs)-1])
}
