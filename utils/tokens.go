package utils

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethodForKey returns the JWT signing method matching a public or private
// key. Unknown key types yield nil.
func SigningMethodForKey(key interface{}) jwt.SigningMethod {
	switch k := key.(type) {
	case *rsa.PrivateKey, *rsa.PublicKey:
		return jwt.SigningMethodRS256
	case *ecdsa.PrivateKey:
		return ecdsaMethod(k.Curve)
	case *ecdsa.PublicKey:
		return ecdsaMethod(k.Curve)
	case ed25519.PrivateKey, ed25519.PublicKey:
		return jwt.SigningMethodEdDSA
	default:
		return nil
	}
}

func ecdsaMethod(curve elliptic.Curve) jwt.SigningMethod {
	switch curve {
	case elliptic.P384():
		return jwt.SigningMethodES384
	case elliptic.P521():
		return jwt.SigningMethodES512
	default:
		return jwt.SigningMethodES256
	}
}

// GenerateKeyID names a public key by the first 16 hex digits of the SHA-256 of its
// PKIX encoding. Keys that cannot be encoded get "".
func GenerateKeyID(pubKey interface{}) string {
	der, err := x509.MarshalPKIXPublicKey(pubKey)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:8])
}

// GetAlgorithmFromKey returns the JWA name for a key, or "" when unknown.
func GetAlgorithmFromKey(key interface{}) string {
	if method := SigningMethodForKey(key); method != nil {
		return method.Alg()
	}
	return ""
}
