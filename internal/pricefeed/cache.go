package pricefeed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// CachedFeed decorates a Feed with a redis-backed cache so the dashboard's
// polling does not hammer the upstream rate limit. Cache failures degrade to
// pass-through: a broken redis never blocks a quote.
type CachedFeed struct {
	inner  Feed
	key    string
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedFeed wraps inner with a redis cache. key names the instrument in
// the cache namespace; redisURL is parsed with redis.ParseURL
// (e.g. "redis://localhost:6379/0").
func NewCachedFeed(inner Feed, key, redisURL string, ttl time.Duration, logger zerolog.Logger) (*CachedFeed, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CachedFeed{
		inner:  inner,
		key:    "spot:" + key,
		client: redis.NewClient(opt),
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Spot returns the cached quote when fresh, otherwise fetches from the inner
// feed and stores the result. Fallback quotes are not cached, so a recovered
// upstream is picked up on the next poll.
func (c *CachedFeed) Spot(ctx context.Context) (*SpotQuote, error) {
	key := c.key

	if raw, err := c.client.Get(ctx, key).Result(); err == nil {
		var quote SpotQuote
		if err := json.Unmarshal([]byte(raw), &quote); err == nil {
			return &quote, nil
		}
		c.logger.Warn().Str("key", key).Msg("Discarding undecodable cached quote")
	}

	quote, err := c.inner.Spot(ctx)
	if err != nil {
		return nil, err
	}
	if !quote.Fallback {
		if raw, err := json.Marshal(quote); err == nil {
			if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
				c.logger.Debug().Err(err).Str("key", key).Msg("Quote cache write failed")
			}
		}
	}
	return quote, nil
}

// Close releases the redis connection.
func (c *CachedFeed) Close() error {
	return c.client.Close()
}
