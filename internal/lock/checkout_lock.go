package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/candraczapansky/software-sub012/internal/httperr"
)

// CheckoutLock serializes settlement application per appointment so two
// concurrent partial payments cannot both read a stale remaining balance.
type CheckoutLock struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *CheckoutLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CheckoutLock{rdb: rdb, ttl: ttl}
}

// release only deletes the key if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// Acquire takes the per-appointment critical section. A held lock means
// another checkout is in flight: the caller reports checkout_busy instead of
// waiting.
func (l *CheckoutLock) Acquire(ctx context.Context, appointmentID uint) (func(), error) {
	key := fmt.Sprintf("checkout:appointment:%d", appointmentID)
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("checkout_busy")
	}

	release := func() {
		releaseScript.Run(context.Background(), l.rdb, []string{key}, token)
	}
	return release, nil
}
