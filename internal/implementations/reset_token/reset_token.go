package resettoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"signon/internal/core/domain/user"
	"time"
)

const tokenByteCount = 20

// SHA256 issues reset tokens from crypto/rand and fingerprints them with
// sha256 before anything touches the database. 20 random bytes give the
// token 160 bits of entropy.
type SHA256 struct {
	validDuration time.Duration
	now           func() time.Time
}

func NewSHA256(validDuration time.Duration, now func() time.Time) *SHA256 {
	if now == nil {
		panic("Argument now must not be nil.")
	}
	return &SHA256{validDuration: validDuration, now: now}
}

func (g *SHA256) GenerateToken() (user.PasswordResetToken, user.ResetTokenFingerprint, time.Time) {
	b := make([]byte, tokenByteCount)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("could not read from crypto/rand: %v", err))
	}
	token := user.PasswordResetToken(hex.EncodeToString(b))
	return token, g.Fingerprint(token), g.now().Add(g.validDuration)
}

func (g *SHA256) Fingerprint(token user.PasswordResetToken) user.ResetTokenFingerprint {
	digest := sha256.Sum256([]byte(token))
	return user.ResetTokenFingerprint(hex.EncodeToString(digest[:]))
}
