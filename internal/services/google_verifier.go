package services

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/turathhub/archive-backend/internal/logger"
)

const googleDiscoveryURL = "https://accounts.google.com/.well-known/openid-configuration"

var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// GoogleIdentity is the subset of Google ID-token claims the account
// layer cares about.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// GoogleVerifier validates Google-issued ID tokens against the
// published JWKS and returns the identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	httpClient *http.Client
	clientID   string
	log        *logger.Logger

	jwks          *jwksCache
	discoveryOnce sync.Once
	discoveryErr  error
}

func NewGoogleVerifier(clientID string, baseLog *logger.Logger) GoogleVerifier {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	return &googleVerifier{
		httpClient: httpClient,
		clientID:   clientID,
		log:        baseLog.With("service", "GoogleVerifier"),
		jwks:       newJWKSCache(httpClient),
	}
}

type oidcDiscovery struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

func (v *googleVerifier) ensureDiscovery(ctx context.Context) error {
	v.discoveryOnce.Do(func() {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, googleDiscoveryURL, nil)
		res, err := v.httpClient.Do(req)
		if err != nil {
			v.discoveryErr = err
			return
		}
		defer res.Body.Close()

		if res.StatusCode < 200 || res.StatusCode >= 300 {
			v.discoveryErr = fmt.Errorf("discovery request failed: %s", res.Status)
			return
		}

		var d oidcDiscovery
		if err := json.NewDecoder(res.Body).Decode(&d); err != nil {
			v.discoveryErr = err
			return
		}
		if strings.TrimSpace(d.JWKSURI) == "" {
			v.discoveryErr = errors.New("discovery missing jwks_uri")
			return
		}
		v.jwks.setURL(d.JWKSURI)
	})
	return v.discoveryErr
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, errors.New("id_token is empty")
	}
	if strings.TrimSpace(v.clientID) == "" {
		return nil, errors.New("google client id not configured")
	}
	if err := v.ensureDiscovery(ctx); err != nil {
		return nil, fmt.Errorf("oidc discovery error: %w", err)
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	claims := jwt.MapClaims{}

	tok, err := parser.ParseWithClaims(idToken, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if strings.TrimSpace(kid) == "" {
			return nil, errors.New("missing kid")
		}
		return v.jwks.getKey(ctx, kid)
	})
	if err != nil {
		return nil, fmt.Errorf("invalid id_token: %w", err)
	}
	if tok == nil || !tok.Valid {
		return nil, errors.New("invalid id_token")
	}

	if err := validateTimeClaims(claims, time.Now()); err != nil {
		return nil, err
	}

	iss, _ := claims["iss"].(string)
	if !containsString(googleIssuers, iss) {
		return nil, fmt.Errorf("issuer mismatch: %q", iss)
	}
	if !audContains(claims["aud"], v.clientID) {
		return nil, errors.New("audience mismatch")
	}

	out := &GoogleIdentity{}
	out.Subject, _ = claims["sub"].(string)
	out.Email, _ = claims["email"].(string)
	out.EmailVerified = parseBoolClaim(claims["email_verified"])
	out.Name, _ = claims["name"].(string)
	out.Picture, _ = claims["picture"].(string)

	if strings.TrimSpace(out.Subject) == "" {
		return nil, errors.New("missing sub")
	}
	return out, nil
}

// validateTimeClaims checks exp/nbf/iat by hand; jwt/v5 MapClaims does
// not expose a combined Valid().
func validateTimeClaims(claims jwt.MapClaims, now time.Time) error {
	expAny, ok := claims["exp"]
	if !ok {
		return errors.New("missing exp")
	}
	exp, err := parseNumericTime(expAny)
	if err != nil {
		return fmt.Errorf("invalid exp: %w", err)
	}
	if now.After(exp) {
		return errors.New("token expired")
	}

	if nbfAny, ok := claims["nbf"]; ok {
		nbf, err := parseNumericTime(nbfAny)
		if err != nil {
			return fmt.Errorf("invalid nbf: %w", err)
		}
		if now.Before(nbf) {
			return errors.New("token not valid yet")
		}
	}

	if iatAny, ok := claims["iat"]; ok {
		iat, err := parseNumericTime(iatAny)
		if err != nil {
			return fmt.Errorf("invalid iat: %w", err)
		}
		if iat.After(now.Add(5 * time.Minute)) {
			return errors.New("token issued in the future")
		}
	}

	return nil
}

func parseNumericTime(v any) (time.Time, error) {
	var sec int64
	switch x := v.(type) {
	case float64:
		sec = int64(x)
	case int64:
		sec = x
	case int:
		sec = int64(x)
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return time.Time{}, err
		}
		sec = n
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		sec = n
	default:
		return time.Time{}, fmt.Errorf("unsupported numeric date type %T", v)
	}
	return time.Unix(sec, 0).UTC(), nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func audContains(aud any, required string) bool {
	switch v := aud.(type) {
	case string:
		return v == required
	case []any:
		for _, it := range v {
			if s, ok := it.(string); ok && s == required {
				return true
			}
		}
	}
	return false
}

func parseBoolClaim(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return strings.EqualFold(x, "true") || x == "1"
	case float64:
		return x != 0
	default:
		return false
	}
}

// ----- JWKS cache -----

type jwksCache struct {
	httpClient *http.Client

	mu      sync.RWMutex
	jwksURL string
	keys    map[string]*rsa.PublicKey

	fetchedAt time.Time
	ttl       time.Duration
}

func newJWKSCache(httpClient *http.Client) *jwksCache {
	return &jwksCache{
		httpClient: httpClient,
		keys:       map[string]*rsa.PublicKey{},
		ttl:        6 * time.Hour,
	}
}

func (j *jwksCache) setURL(url string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.jwksURL = url
}

type jwkSet struct {
	Keys []jwk `json:"keys"`
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

func (j *jwksCache) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	j.mu.RLock()
	key := j.keys[kid]
	stale := time.Since(j.fetchedAt) > j.ttl
	url := j.jwksURL
	j.mu.RUnlock()

	if key != nil && !stale {
		return key, nil
	}
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("jwks url not set")
	}

	if err := j.refresh(ctx, url); err != nil {
		// fall back to a cached key if one exists
		j.mu.RLock()
		key = j.keys[kid]
		j.mu.RUnlock()
		if key != nil {
			return key, nil
		}
		return nil, err
	}

	j.mu.RLock()
	defer j.mu.RUnlock()
	key = j.keys[kid]
	if key == nil {
		return nil, fmt.Errorf("kid not found in jwks: %s", kid)
	}
	return key, nil
}

func (j *jwksCache) refresh(ctx context.Context, url string) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	res, err := j.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("jwks fetch failed: %s", res.Status)
	}

	var set jwkSet
	if err := json.NewDecoder(res.Body).Decode(&set); err != nil {
		return err
	}

	next := map[string]*rsa.PublicKey{}
	for _, k := range set.Keys {
		if strings.TrimSpace(k.Kid) == "" || k.Kty != "RSA" {
			continue
		}
		pub, err := rsaFromModExp(k.N, k.E)
		if err == nil {
			next[k.Kid] = pub
		}
	}

	if len(next) == 0 {
		return errors.New("jwks contained no usable keys")
	}

	j.mu.Lock()
	j.keys = next
	j.fetchedAt = time.Now()
	j.mu.Unlock()
	return nil
}

func rsaFromModExp(nB64, eB64 string) (*rsa.PublicKey, error) {
	nb, err := base64.RawURLEncoding.DecodeString(nB64)
	if err != nil {
		return nil, err
	}
	eb, err := base64.RawURLEncoding.DecodeString(eB64)
	if err != nil {
		return nil, err
	}
	e := 0
	for _, b := range eb {
		e = e<<8 | int(b)
	}
	if e == 0 {
		return nil, errors.New("invalid exponent")
	}
	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nb),
		E: e,
	}, nil
}
