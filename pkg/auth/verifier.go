package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lojabackend/pkg/config"

	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

type Verifier interface {
	Verify(ctx context.Context, tokenString string) (jwt.Token, error)
}

// JWTVerifier manages JWT verification using a JWKS endpoint.
// It caches the JWKS set to minimize network calls and supports automatic refresh.
type JWTVerifier struct {
	mu sync.RWMutex

	jwksURL  string
	issuer   string
	clientID string

	cachedSet     jwk.Set
	lastRefreshed time.Time
	minInterval   time.Duration
}

// NewJWTVerifier creates a new JWTVerifier instance. It fetches the JWKS
// immediately so a misconfigured IdP fails at startup, not on first request.
func NewJWTVerifier(ctx context.Context, cfg config.IdP) (*JWTVerifier, error) {
	v := &JWTVerifier{
		jwksURL:     cfg.JwksURL,
		issuer:      cfg.Issuer,
		clientID:    cfg.ClientID,
		minInterval: cfg.MinInterval,
	}
	if _, err := v.getKeySet(ctx); err != nil {
		return nil, fmt.Errorf("initial JWKS fetch failed: %w", err)
	}

	return v, nil
}

// getKeySet retrieves the JWKS set, caching it for subsequent calls.
func (v *JWTVerifier) getKeySet(ctx context.Context) (jwk.Set, error) {
	v.mu.RLock()
	if v.cachedSet != nil && time.Since(v.lastRefreshed) < v.minInterval {
		set := v.cachedSet
		v.mu.RUnlock()
		return set, nil
	}
	v.mu.RUnlock()

	v.mu.Lock()
	defer v.mu.Unlock()
	// Another goroutine may have refreshed the cache while we waited for the lock.
	if v.cachedSet != nil && time.Since(v.lastRefreshed) < v.minInterval {
		return v.cachedSet, nil
	}
	set, err := jwk.Fetch(ctx, v.jwksURL)
	if err != nil {
		// Keep serving a stale set if the IdP is temporarily unreachable.
		if v.cachedSet != nil {
			return v.cachedSet, nil
		}
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", v.jwksURL, err)
	}
	v.cachedSet = set
	v.lastRefreshed = time.Now()
	return v.cachedSet, nil
}

func (v *JWTVerifier) Verify(ctx context.Context, tokenString string) (jwt.Token, error) {
	set, err := v.getKeySet(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get keyset for verification: %w", err)
	}

	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(v.issuer),
		jwt.WithClaimValue("azp", v.clientID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	return token, nil
}
