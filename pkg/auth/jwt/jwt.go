// Package jwt provides a JWT authenticator validating HS256-signed
// bearer tokens against a shared secret.
package jwt

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/Jiyath5516F/edenai-apis/pkg/auth"
)

// Config holds the JWT authenticator configuration.
type Config struct {
	// Secret is the HMAC signing secret shared with the token issuer.
	Secret string

	// Issuer is the expected iss claim. If empty, issuer is not
	// validated.
	Issuer string
}

// Authenticator validates HS256 bearer tokens.
type Authenticator struct {
	config Config
}

// New creates a JWT authenticator with the given configuration.
func New(cfg Config) *Authenticator {
	return &Authenticator{config: cfg}
}

// Authenticate extracts a bearer token from the Authorization header
// and validates it as an HS256 JWT.
//
// Decision outcomes:
//   - Abstain: no Authorization header or not a Bearer scheme
//   - No: bearer token present but invalid (expired, wrong issuer, bad signature)
//   - Yes: valid JWT with the sub claim as the identity subject
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.Result {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.Result{Decision: auth.Abstain}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Result{Decision: auth.Abstain}
	}

	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" {
		return auth.Result{Decision: auth.No, Err: fmt.Errorf("empty bearer token")}
	}

	// API keys are also sent as bearer tokens; only well-formed JWTs
	// (three dot-separated segments) are claimed by this authenticator.
	if strings.Count(tokenStr, ".") != 2 {
		return auth.Result{Decision: auth.Abstain}
	}

	opts := []jwtlib.ParserOption{jwtlib.WithValidMethods([]string{"HS256"})}
	if a.config.Issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(a.config.Issuer))
	}

	token, err := jwtlib.ParseWithClaims(tokenStr, &jwtlib.RegisteredClaims{}, func(token *jwtlib.Token) (any, error) {
		return []byte(a.config.Secret), nil
	}, opts...)
	if err != nil {
		return auth.Result{Decision: auth.No, Err: fmt.Errorf("invalid token: %w", err)}
	}

	claims, ok := token.Claims.(*jwtlib.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return auth.Result{Decision: auth.No, Err: fmt.Errorf("token missing sub claim")}
	}

	return auth.Result{
		Decision: auth.Yes,
		Identity: &auth.Identity{Subject: claims.Subject},
	}
}
