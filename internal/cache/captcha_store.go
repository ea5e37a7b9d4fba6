package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// captchaPrefix namespaces issued captcha codes by correlation id.
const captchaPrefix = "captcha_codes:"

// CaptchaStore resolves one-time captcha codes. Codes are written by the
// captcha issuing component; this side only consumes them.
type CaptchaStore struct {
	rdb *redis.Client
}

// NewCaptchaStore creates a CaptchaStore over the given client
func NewCaptchaStore(rdb *redis.Client) *CaptchaStore {
	return &CaptchaStore{rdb: rdb}
}

// GetAndConsume fetches and deletes the code for a correlation id in one
// round trip, so a code can never be replayed. Absent ids yield ("", nil).
func (c *CaptchaStore) GetAndConsume(ctx context.Context, correlationID string) (string, error) {
	val, err := c.rdb.GetDel(ctx, captchaPrefix+correlationID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("captcha get %s: %w", correlationID, err)
	}
	return val, nil
}
