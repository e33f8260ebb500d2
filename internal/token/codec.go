package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authapp/internal/apperror"
)

// Claimsは署名付きtokenに乗せる中身。
// access tokenはSubjectのみ。refresh tokenはJTIとDeviceIDも持つ。
// tokenの種別はjtiの有無だけで区別する。
type Claims struct {
	Subject   string
	JTI       string
	DeviceID  string
	ExpiresAt time.Time
}

// Codecはclaims⇔署名付きコンパクト文字列の変換だけをやる。
// 期限の意味的な判定はしない（access/refreshで期限の扱いが違うので呼び出し側の責務）。
type Codec struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
}

// NewCodecは設定されたアルゴリズムと鍵からCodecを作る。
func NewCodec(algorithm string, privatePEM []byte, publicPEM []byte) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}

	signKey, verifyKey, err := KeysFor(algorithm, privatePEM, publicPEM)
	if err != nil {
		return nil, err
	}

	return &Codec{
		method:    method,
		signKey:   signKey,
		verifyKey: verifyKey,
	}, nil
}

// Encodeはclaims+期限を署名して返す。
func (c *Codec) Encode(claims Claims, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)

	mc := jwt.MapClaims{
		"sub": claims.Subject,
		"exp": expiresAt.Unix(),
	}
	if claims.JTI != "" {
		mc["jti"] = claims.JTI
		mc["device_id"] = claims.DeviceID
	}

	signed, err := jwt.NewWithClaims(c.method, mc).SignedString(c.signKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Decodeは署名と構造だけを検証してclaimsを返す。
// 期限切れでもここでは落とさない（expはClaimsに入れて返すだけ）。
// 署名不正・壊れた構造・アルゴリズム違い・subなしはErrInvalidToken。
func (c *Codec) Decode(tokenString string) (Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(t *jwt.Token) (any, error) {
			// アルゴリズム混同攻撃を防ぐ。設定したものだけ受ける。
			if t.Method.Alg() != c.method.Alg() {
				return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
			}
			return c.verifyKey, nil
		},
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, apperror.ErrInvalidToken
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, apperror.ErrInvalidToken
	}

	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return Claims{}, apperror.ErrInvalidToken
	}

	exp, err := mc.GetExpirationTime()
	if err != nil || exp == nil {
		return Claims{}, apperror.ErrInvalidToken
	}

	claims := Claims{
		Subject:   sub,
		ExpiresAt: exp.Time,
	}
	if jti, ok := mc["jti"].(string); ok {
		claims.JTI = jti
	}
	if deviceID, ok := mc["device_id"].(string); ok {
		claims.DeviceID = deviceID
	}

	return claims, nil
}
