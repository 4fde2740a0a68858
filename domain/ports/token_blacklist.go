package ports

import (
	"context"
	"time"
)

// TokenBlacklistPort เก็บ token id ที่ถูก logout แล้ว จนกว่า token จะหมดอายุ
type TokenBlacklistPort interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
