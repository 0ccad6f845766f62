package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MikeMC777/storex/internal/logging"
)

const cacheKeyPrefix = "storex:session:"

// CachedVerifier remembers verified principals in Redis for TTL.
// Rejected tokens are never cached. Redis failures fall through to the provider.
type CachedVerifier struct {
	next Verifier
	rdb  redis.UniversalClient
	ttl  time.Duration
}

func NewCachedVerifier(next Verifier, rdb redis.UniversalClient, ttl time.Duration) *CachedVerifier {
	return &CachedVerifier{next: next, rdb: rdb, ttl: ttl}
}

func (v *CachedVerifier) Verify(ctx context.Context, token string) (*Principal, error) {
	key := cacheKey(token)
	raw, err := v.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var p Principal
		if jsonErr := json.Unmarshal(raw, &p); jsonErr == nil {
			return &p, nil
		}
	case !errors.Is(err, redis.Nil):
		logging.FromContext(ctx).Warn("session_cache_get_failed", zap.Error(err))
	}

	p, err := v.next.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(p); err == nil {
		if err := v.rdb.Set(ctx, key, b, v.ttl).Err(); err != nil {
			logging.FromContext(ctx).Warn("session_cache_set_failed", zap.Error(err))
		}
	}
	return p, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
