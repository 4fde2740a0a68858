package redis

import (
	"context"
	"errors"
	"time"

	"tasklist-api/domain/ports"
)

const revokedTokenPrefix = "revoked_token:"

// TokenBlacklist เก็บ jti ของ token ที่ logout แล้ว โดยให้ key หมดอายุพร้อม token
type TokenBlacklist struct {
	client *Client
}

func NewTokenBlacklist(client *Client) ports.TokenBlacklistPort {
	return &TokenBlacklist{client: client}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id is required")
	}
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl)
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	return b.client.Exists(ctx, revokedTokenPrefix+tokenID)
}
