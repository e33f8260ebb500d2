package token

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// KeysForはアルゴリズム族から署名鍵と検証鍵を決める。
// HS*（対称）：検証鍵 = 署名鍵（共有シークレット）。
// RS*（非対称）：秘密鍵と公開鍵をそれぞれPEMからパースする。
// 設定フィールドの上書きではなく、ここで明示的に導出する。
func KeysFor(algorithm string, privatePEM []byte, publicPEM []byte) (signKey any, verifyKey any, err error) {
	switch {
	case strings.HasPrefix(algorithm, "HS"):
		if len(privatePEM) == 0 {
			return nil, nil, fmt.Errorf("shared secret is empty")
		}
		return privatePEM, privatePEM, nil

	case strings.HasPrefix(algorithm, "RS"):
		priv, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
		if err != nil {
			return nil, nil, fmt.Errorf("parse private key: %w", err)
		}
		if len(publicPEM) == 0 {
			// 公開鍵の指定がなければ秘密鍵から導出する
			return priv, &priv.PublicKey, nil
		}
		pub, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
		if err != nil {
			return nil, nil, fmt.Errorf("parse public key: %w", err)
		}
		return priv, pub, nil

	default:
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", algorithm)
	}
}
