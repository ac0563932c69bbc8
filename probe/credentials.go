package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Crowley723/deploy-monitor/utils"
)

const maxJWKSBytes = 1 << 20

// KeyInfo describes the database anon key as seen from its claims.
type KeyInfo struct {
	Algorithm  string     `json:"algorithm,omitempty"`
	Role       string     `json:"role,omitempty"`
	Issuer     string     `json:"issuer,omitempty"`
	Ref        string     `json:"ref,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Expired    bool       `json:"expired"`
	Verified   bool       `json:"verified"`
	VerifiedBy string     `json:"verified_by,omitempty"`
	KeyID      string     `json:"key_id,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// KeyInspector decodes an anon key and, when a shared secret or a JWKS endpoint is
// known, verifies its signature. Expiry is reported, not enforced.
type KeyInspector struct {
	Secret  string
	JWKSURL string
	Client  *http.Client
	Now     func() time.Time
}

func (k *KeyInspector) Inspect(ctx context.Context, token string) *KeyInfo {
	info := &KeyInfo{}

	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		info.Error = fmt.Sprintf("failed to decode anon key: %v", err)
		return info
	}

	info.Algorithm = parsed.Method.Alg()
	info.Role, _ = claims["role"].(string)
	info.Ref, _ = claims["ref"].(string)
	info.Issuer, _ = claims.GetIssuer()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt := exp.Time.UTC()
		info.ExpiresAt = &expiresAt
		info.Expired = nowFunc(k.Now).After(expiresAt)
	}

	switch {
	case k.Secret != "":
		err = k.verifySecret(token)
		info.VerifiedBy = "secret"
	case k.JWKSURL != "":
		info.KeyID, err = k.verifyJWKS(ctx, token, parsed)
		info.VerifiedBy = "jwks"
	default:
		return info
	}

	if err != nil {
		info.Error = fmt.Sprintf("signature verification failed: %v", err)
		return info
	}

	info.Verified = true
	return info
}

func (k *KeyInspector) verifySecret(token string) error {
	_, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(k.Secret), nil
	},
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithoutClaimsValidation(),
	)
	return err
}

// verifyJWKS returns the id of the key that verified token. Keys published without
// a kid are named by their derived key id.
func (k *KeyInspector) verifyJWKS(ctx context.Context, token string, parsed *jwt.Token) (string, error) {
	set, err := k.fetchJWKS(ctx)
	if err != nil {
		return "", err
	}

	keys := set.Keys
	if kid, _ := parsed.Header["kid"].(string); kid != "" {
		keys = set.Key(kid)
	}
	if len(keys) == 0 {
		return "", errors.New("no matching key in key set")
	}

	var errs []error
	for _, jwk := range keys {
		if !jwk.Valid() || !jwk.IsPublic() {
			continue
		}

		alg := jwk.Algorithm
		if alg == "" {
			alg = utils.GetAlgorithmFromKey(jwk.Key)
		}

		_, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return jwk.Key, nil
		},
			jwt.WithValidMethods([]string{alg}),
			jwt.WithoutClaimsValidation(),
		)
		if err == nil {
			if jwk.KeyID != "" {
				return jwk.KeyID, nil
			}
			return utils.GenerateKeyID(jwk.Key), nil
		}
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return "", errors.New("no usable public key in key set")
	}
	return "", errors.Join(errs...)
}

func (k *KeyInspector) fetchJWKS(ctx context.Context) (*jose.JSONWebKeySet, error) {
	client := k.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, k.JWKSURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create jwks request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jwks: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch jwks: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxJWKSBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read jwks: %w", err)
	}

	var set jose.JSONWebKeySet
	if err := json.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("failed to parse jwks: %w", err)
	}

	return &set, nil
}
