package token_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapp/internal/apperror"
	"authapp/internal/token"
)

const testSecret = "test-secret-for-codec"

func newHS256Codec(t *testing.T) *token.Codec {
	t.Helper()
	c, err := token.NewCodec("HS256", []byte(testSecret), nil)
	require.NoError(t, err)
	return c
}

// =====================
// Encode / Decode
// =====================

func TestCodec_RoundTrip(t *testing.T) {
	c := newHS256Codec(t)

	in := token.Claims{
		Subject:  "user-123",
		JTI:      "jti-456",
		DeviceID: "device-789",
	}

	signed, expiresAt, err := c.Encode(in, 30*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 5*time.Second)

	out, err := c.Decode(signed)
	require.NoError(t, err)

	// expを除いてclaimsがそのまま往復する
	assert.Equal(t, in.Subject, out.Subject)
	assert.Equal(t, in.JTI, out.JTI)
	assert.Equal(t, in.DeviceID, out.DeviceID)
	assert.WithinDuration(t, expiresAt, out.ExpiresAt, time.Second)
}

func TestCodec_RoundTrip_AccessTokenHasNoJTI(t *testing.T) {
	c := newHS256Codec(t)

	signed, _, err := c.Encode(token.Claims{Subject: "user-123"}, 15*time.Minute)
	require.NoError(t, err)

	out, err := c.Decode(signed)
	require.NoError(t, err)
	assert.Empty(t, out.JTI)
	assert.Empty(t, out.DeviceID)
}

// Decodeは期限を見ない。期限切れでも署名が正しければclaimsを返す。
// 期限の判定は呼び出し側（access/refreshで扱いが違う）。
func TestCodec_Decode_DoesNotEnforceExpiry(t *testing.T) {
	c := newHS256Codec(t)

	signed, _, err := c.Encode(token.Claims{Subject: "user-123"}, -time.Minute)
	require.NoError(t, err)

	out, err := c.Decode(signed)
	require.NoError(t, err)
	assert.True(t, out.ExpiresAt.Before(time.Now()))
}

func TestCodec_Decode_TamperedToken(t *testing.T) {
	c := newHS256Codec(t)

	signed, _, err := c.Encode(token.Claims{Subject: "user-123"}, time.Minute)
	require.NoError(t, err)

	tampered := signed[:len(signed)-4] + "AAAA"

	_, err = c.Decode(tampered)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestCodec_Decode_Garbage(t *testing.T) {
	c := newHS256Codec(t)

	_, err := c.Decode("not.a.token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestCodec_Decode_WrongSecret(t *testing.T) {
	c := newHS256Codec(t)

	other, err := token.NewCodec("HS256", []byte("completely-different"), nil)
	require.NoError(t, err)

	signed, _, err := other.Encode(token.Claims{Subject: "user-123"}, time.Minute)
	require.NoError(t, err)

	_, err = c.Decode(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

// 設定と違うアルゴリズムで署名されたtokenは受けない（混同攻撃対策）
func TestCodec_Decode_AlgorithmMismatch(t *testing.T) {
	c := newHS256Codec(t)

	hs384, err := token.NewCodec("HS384", []byte(testSecret), nil)
	require.NoError(t, err)

	signed, _, err := hs384.Encode(token.Claims{Subject: "user-123"}, time.Minute)
	require.NoError(t, err)

	_, err = c.Decode(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestCodec_Decode_MissingSubject(t *testing.T) {
	c := newHS256Codec(t)

	signed, _, err := c.Encode(token.Claims{Subject: ""}, time.Minute)
	require.NoError(t, err)

	_, err = c.Decode(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

// =====================
// RS256（非対称）
// =====================

func generateRSAPEM(t *testing.T) (privPEM []byte, pubPEM []byte) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	privPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	pubBytes, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pubPEM = pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: pubBytes,
	})

	return privPEM, pubPEM
}

func TestCodec_RS256_RoundTrip(t *testing.T) {
	privPEM, pubPEM := generateRSAPEM(t)

	c, err := token.NewCodec("RS256", privPEM, pubPEM)
	require.NoError(t, err)

	signed, _, err := c.Encode(token.Claims{Subject: "user-123", JTI: "j1", DeviceID: "d1"}, time.Minute)
	require.NoError(t, err)

	out, err := c.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", out.Subject)
	assert.Equal(t, "j1", out.JTI)
}

// 公開鍵の指定がなければ秘密鍵から導出される
func TestCodec_RS256_PublicKeyDerivedFromPrivate(t *testing.T) {
	privPEM, _ := generateRSAPEM(t)

	c, err := token.NewCodec("RS256", privPEM, nil)
	require.NoError(t, err)

	signed, _, err := c.Encode(token.Claims{Subject: "user-123"}, time.Minute)
	require.NoError(t, err)

	out, err := c.Decode(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", out.Subject)
}

// =====================
// KeysFor
// =====================

func TestKeysFor_SymmetricVerificationKeyEqualsSigningKey(t *testing.T) {
	secret := []byte("shared")

	signKey, verifyKey, err := token.KeysFor("HS256", secret, nil)
	require.NoError(t, err)

	// 対称系は検証鍵=署名鍵
	assert.Equal(t, signKey, verifyKey)
}

func TestKeysFor_UnsupportedAlgorithm(t *testing.T) {
	_, _, err := token.KeysFor("NONE", []byte("x"), nil)
	assert.Error(t, err)
}

func TestNewCodec_UnknownAlgorithm(t *testing.T) {
	_, err := token.NewCodec("XX999", []byte("x"), nil)
	assert.Error(t, err)
}
