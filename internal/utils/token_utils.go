package utils

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims carried by both access and refresh tokens.
type Claims struct {
	UserID int64  `json:"uid"`
	Kind   string `json:"typ"`
	jwt.RegisteredClaims
}

// GenerateJWT generates a new HS256 token for userID of the given kind.
// tokenID, when non-empty, is set as the jti claim.
func GenerateJWT(userID int64, kind string, secret string, issuedAt time.Time, expiryDuration time.Duration, issuer string, tokenID string) (string, time.Time, error) {
	expiresAt := issuedAt.Add(expiryDuration)
	claims := Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// now supplies the clock used for exp/nbf checks; nil means time.Now.
func ParseAndValidateJWT(tokenString string, secretKey string, now func() time.Time) (*Claims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if now != nil {
		opts = append(opts, jwt.WithTimeFunc(now))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
