package session

import (
	"strconv"
	"time"

	"signon/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWT issues signed bearer session tokens. The token carries only the user ID
// and timestamps; nothing about it is stored server-side.
type JWT struct {
	secret        []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewJWT(secret string, validDuration time.Duration, now func() time.Time) *JWT {
	if now == nil {
		panic("Argument now must not be nil.")
	}
	return &JWT{secret: []byte(secret), validDuration: validDuration, now: now}
}

func (i *JWT) Issue(id user.ID) (user.SessionToken, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(id), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.validDuration)),
		ID:        uuid.NewString(),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return user.SessionToken(""), err
	}
	return user.SessionToken(signed), nil
}

func (i *JWT) Verify(token user.SessionToken) (user.ID, error) {
	var id user.ID
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(
		string(token),
		claims,
		func(t *jwt.Token) (interface{}, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return id, err
	}
	if !parsed.Valid {
		return id, jwt.ErrTokenInvalidClaims
	}
	rawID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return id, jwt.ErrTokenInvalidSubject
	}
	return user.ID(rawID), nil
}
