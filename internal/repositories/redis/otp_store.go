package redis

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/estatehub-backend/internal/repositories"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// Compile-time check to ensure OTPStore implements the interface
var _ repositories.OTPStore = (*OTPStore)(nil)

// OTPStore keeps verification codes in Redis with an expiry
type OTPStore struct {
	client redis.Cmdable
}

// NewOTPStore creates a new OTPStore
func NewOTPStore(client redis.Cmdable) *OTPStore {
	return &OTPStore{client: client}
}

// Save stores code under key, replacing any previous code
func (s *OTPStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	return s.client.Set(ctx, otpKeyPrefix+key, code, ttl).Err()
}

// Get returns the live code for key
func (s *OTPStore) Get(ctx context.Context, key string) (string, error) {
	code, err := s.client.Get(ctx, otpKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", repositories.ErrNotFound
	}
	return code, err
}

// Delete removes the code for key
func (s *OTPStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, otpKeyPrefix+key).Err()
}
