package probe

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crowley723/deploy-monitor/utils"
)

func anonClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"iss":  "supabase",
		"ref":  "aura-call",
		"role": "anon",
		"iat":  exp.Add(-24 * time.Hour).Unix(),
		"exp":  exp.Unix(),
	}
}

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func jwksServer(t *testing.T, keys ...jose.JSONWebKey) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jose.JSONWebKeySet{Keys: keys})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestKeyInspectorClaims(t *testing.T) {
	inspector := &KeyInspector{Now: fixedNow}

	t.Run("ValidKey", func(t *testing.T) {
		exp := fixedTime.Add(365 * 24 * time.Hour)
		info := inspector.Inspect(context.Background(), signHS256(t, "secret", anonClaims(exp)))

		assert.Equal(t, "HS256", info.Algorithm)
		assert.Equal(t, "anon", info.Role)
		assert.Equal(t, "supabase", info.Issuer)
		assert.Equal(t, "aura-call", info.Ref)
		require.NotNil(t, info.ExpiresAt)
		assert.True(t, exp.Truncate(time.Second).Equal(*info.ExpiresAt))
		assert.False(t, info.Expired)
		assert.False(t, info.Verified)
		assert.Empty(t, info.VerifiedBy)
		assert.Empty(t, info.Error)
	})

	t.Run("ExpiredKey", func(t *testing.T) {
		info := inspector.Inspect(context.Background(), signHS256(t, "secret", anonClaims(fixedTime.Add(-time.Hour))))
		assert.True(t, info.Expired)
		assert.Empty(t, info.Error)
	})

	t.Run("Garbage", func(t *testing.T) {
		info := inspector.Inspect(context.Background(), "not-a-jwt")
		assert.Contains(t, info.Error, "failed to decode anon key")
	})
}

func TestKeyInspectorSecret(t *testing.T) {
	token := signHS256(t, "super-secret", anonClaims(fixedTime.Add(-time.Hour)))

	t.Run("MatchingSecret", func(t *testing.T) {
		info := (&KeyInspector{Secret: "super-secret", Now: fixedNow}).Inspect(context.Background(), token)
		assert.True(t, info.Verified, info.Error)
		assert.Equal(t, "secret", info.VerifiedBy)
		assert.True(t, info.Expired, "expiry is reported independently of the signature")
	})

	t.Run("WrongSecret", func(t *testing.T) {
		info := (&KeyInspector{Secret: "other", Now: fixedNow}).Inspect(context.Background(), token)
		assert.False(t, info.Verified)
		assert.Contains(t, info.Error, "signature verification failed")
	})
}

func TestKeyInspectorJWKS(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	kid := utils.GenerateKeyID(&key.PublicKey)

	sign := func(kid string) string {
		token := jwt.NewWithClaims(jwt.SigningMethodES256, anonClaims(fixedTime.Add(time.Hour)))
		if kid != "" {
			token.Header["kid"] = kid
		}
		signed, err := token.SignedString(key)
		require.NoError(t, err)
		return signed
	}

	publicJWK := jose.JSONWebKey{Key: &key.PublicKey, KeyID: kid, Algorithm: "ES256", Use: "sig"}

	t.Run("MatchingKid", func(t *testing.T) {
		server := jwksServer(t, publicJWK)
		info := (&KeyInspector{JWKSURL: server.URL, Now: fixedNow}).Inspect(context.Background(), sign(kid))
		assert.True(t, info.Verified, info.Error)
		assert.Equal(t, "jwks", info.VerifiedBy)
		assert.Equal(t, kid, info.KeyID)
	})

	t.Run("UnnamedKeyGetsDerivedID", func(t *testing.T) {
		unnamed := jose.JSONWebKey{Key: &key.PublicKey, Algorithm: "ES256", Use: "sig"}

		server := jwksServer(t, unnamed)
		info := (&KeyInspector{JWKSURL: server.URL, Now: fixedNow}).Inspect(context.Background(), sign(""))
		assert.True(t, info.Verified, info.Error)
		assert.Equal(t, utils.GenerateKeyID(&key.PublicKey), info.KeyID)
		assert.Len(t, info.KeyID, 16)
	})

	t.Run("NoKidTriesAllKeys", func(t *testing.T) {
		other, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)
		otherJWK := jose.JSONWebKey{Key: &other.PublicKey, KeyID: "other", Use: "sig"}

		server := jwksServer(t, otherJWK, publicJWK)
		info := (&KeyInspector{JWKSURL: server.URL, Now: fixedNow}).Inspect(context.Background(), sign(""))
		assert.True(t, info.Verified, info.Error)
		assert.Equal(t, kid, info.KeyID)
	})

	t.Run("UnknownKid", func(t *testing.T) {
		server := jwksServer(t, publicJWK)
		info := (&KeyInspector{JWKSURL: server.URL, Now: fixedNow}).Inspect(context.Background(), sign("missing"))
		assert.False(t, info.Verified)
		assert.Contains(t, info.Error, "no matching key")
	})

	t.Run("EndpointDown", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		t.Cleanup(server.Close)

		info := (&KeyInspector{JWKSURL: server.URL, Now: fixedNow}).Inspect(context.Background(), sign(kid))
		assert.False(t, info.Verified)
		assert.Contains(t, info.Error, "status 404")
	})
}
