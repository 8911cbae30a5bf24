package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult はレート制限チェックの結果を表します
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// RateLimitConfig はレート制限の設定を定義します
type RateLimitConfig struct {
	Type     string        // 制限タイプ（department:write等）
	Requests int           // ウィンドウ内の最大リクエスト数
	Window   time.Duration // ウィンドウサイズ
}

// Enabled は制限が有効かどうかを返します
func (c RateLimitConfig) Enabled() bool {
	return c.Requests > 0 && c.Window > 0
}

// RateLimiter はRedisのソート済みセットでスライディングウィンドウ制限を提供します
type RateLimiter struct {
	client redis.UniversalClient
}

// NewRateLimiter は新しいRateLimiterを作成します
func NewRateLimiter(client redis.UniversalClient) *RateLimiter {
	return &RateLimiter{client: client}
}

// 古いエントリの削除・カウント・記録をアトミックに行う
var slidingWindowScript = redis.NewScript(`
    local key = KEYS[1]
    local now = tonumber(ARGV[1])
    local window = tonumber(ARGV[2])
    local limit = tonumber(ARGV[3])

    redis.call('ZREMRANGEBYSCORE', key, 0, now - window)
    local count = redis.call('ZCARD', key)

    if count < limit then
        redis.call('ZADD', key, now, now .. ':' .. math.random())
        redis.call('PEXPIRE', key, window)
        return {1, limit - count - 1, now + window}
    end

    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    return {0, 0, tonumber(oldest[2]) + window}
`)

// Allow はリクエストが許可されるかチェックします
func (r *RateLimiter) Allow(ctx context.Context, identifier string, config RateLimitConfig) (*RateLimitResult, error) {
	key := RateLimitKey(config.Type, identifier)
	now := time.Now().UnixMilli()

	result, err := slidingWindowScript.Run(ctx, r.client, []string{key}, now, config.Window.Milliseconds(), config.Requests).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: int(result[1]),
		ResetAt:   time.UnixMilli(result[2]),
	}, nil
}

// Reset は識別子のカウンターを削除します
func (r *RateLimiter) Reset(ctx context.Context, identifier string, config RateLimitConfig) error {
	return r.client.Del(ctx, RateLimitKey(config.Type, identifier)).Err()
}
