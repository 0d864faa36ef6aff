package cache

import (
	"context"
	"time"
)

const (
	KeyPublicPackages = "public:packages"
	KeyPublicProjects = "public:projects"

	PublicCatalogTTL = 5 * time.Minute
)

func revokedKey(jti string) string { return "revoked:" + jti }

// RevokeToken blacklists a token id until it would have expired anyway.
func RevokeToken(ctx context.Context, s Store, jti string, until time.Time) error {
	ttl := time.Until(until)
	if jti == "" || ttl <= 0 {
		return nil
	}
	return s.Set(ctx, revokedKey(jti), []byte("1"), ttl)
}

func IsRevoked(ctx context.Context, s Store, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	return s.Exists(ctx, revokedKey(jti))
}

// Allow counts one hit for key in a fixed window and reports whether it is within limit.
// A disabled store or a non-positive limit always allows.
func Allow(ctx context.Context, s Store, key string, limit int, window time.Duration) (bool, error) {
	if !s.Enabled() || limit <= 0 {
		return true, nil
	}
	n, err := s.Incr(ctx, "rl:"+key, window)
	if err != nil {
		return true, err
	}
	return n <= int64(limit), nil
}
