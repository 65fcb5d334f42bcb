package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errInvalidSessionCookie = errors.New("invalid session cookie")

// cookieCodec signs session ids into cookie values. The session id travels
// as the jti claim of an HS256 token.
type cookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func (cc cookieCodec) encode(sid string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(cc.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
}

func (cc cookieCodec) decode(value string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(*jwt.Token) (any, error) {
		return cc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.ID == "" {
		return "", errInvalidSessionCookie
	}
	return claims.ID, nil
}
