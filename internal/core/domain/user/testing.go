package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	c "signon/internal/core/domain/common"
	"sync"
	"time"
)

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByID(ctx context.Context, id ID) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email c.Email) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not get user by email %v", email)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) GetByResetFingerprint(
	ctx context.Context,
	fingerprint ResetTokenFingerprint,
) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.ResetFingerprint.IsPresent && u.ResetFingerprint.Value == fingerprint {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetResetToken(
	ctx context.Context,
	id ID,
	fingerprint ResetTokenFingerprint,
	expiresAt time.Time,
) error {
	if r.ReturnError {
		return fmt.Errorf("could not set reset token for user %d", id)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].ResetFingerprint = c.NewOptional(fingerprint, true)
			r.Users[ix].ResetExpiresAt = c.NewOptional(expiresAt, true)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

func (r *FakeUserRepository) ClearResetToken(ctx context.Context, id ID) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].ResetFingerprint = c.NewOptional(ResetTokenFingerprint(""), false)
			r.Users[ix].ResetExpiresAt = c.NewOptional(time.Time{}, false)
			return nil
		}
	}
	return ErrUserDoesNotExist
}

// UpdatePassword mirrors the conditional update of the real repository: the
// whole check-and-mutate runs under one lock, so concurrent calls with the
// same fingerprint see exactly one winner.
func (r *FakeUserRepository) UpdatePassword(ctx context.Context, input UpdatePasswordInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not update password")
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if !u.ResetFingerprint.IsPresent || u.ResetFingerprint.Value != input.Fingerprint {
			continue
		}
		if !u.ResetExpiresAt.IsPresent || !input.Now.Before(u.ResetExpiresAt.Value) {
			continue
		}
		r.Users[ix].PasswordHash = input.PasswordHash
		r.Users[ix].ResetFingerprint = c.NewOptional(ResetTokenFingerprint(""), false)
		r.Users[ix].ResetExpiresAt = c.NewOptional(time.Time{}, false)
		return r.Users[ix], nil
	}
	return u, ErrInvalidResetToken
}

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	if password == "" {
		panic("password must not be empty")
	}
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakePasswordResetTokenGenerator struct {
	Token     PasswordResetToken
	ExpiresAt time.Time
	Generated int
	lock      sync.Mutex
}

func NewFakePasswordResetTokenGenerator(token string, expiresAt time.Time) *FakePasswordResetTokenGenerator {
	return &FakePasswordResetTokenGenerator{Token: PasswordResetToken(token), ExpiresAt: expiresAt}
}

func (g *FakePasswordResetTokenGenerator) GenerateToken() (PasswordResetToken, ResetTokenFingerprint, time.Time) {
	g.lock.Lock()
	g.Generated++
	g.lock.Unlock()
	return g.Token, g.Fingerprint(g.Token), g.ExpiresAt
}

func (g *FakePasswordResetTokenGenerator) Fingerprint(token PasswordResetToken) ResetTokenFingerprint {
	return ResetTokenFingerprint("fingerprint::" + string(token))
}

type FakePasswordResetTokenSender struct {
	Sent        []User
	SentTokens  []PasswordResetToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendToken(ctx context.Context, u User, token PasswordResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("could not send password reset token to user %d", u.ID)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, u)
	s.SentTokens = append(s.SentTokens, token)
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSentTo() User {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}

type FakeSessionTokenIssuer struct {
	ReturnError bool
}

func NewFakeSessionTokenIssuer() *FakeSessionTokenIssuer {
	return &FakeSessionTokenIssuer{}
}

func (i *FakeSessionTokenIssuer) Issue(id ID) (SessionToken, error) {
	if i.ReturnError {
		return SessionToken(""), fmt.Errorf("could not issue session token for user %d", id)
	}
	return SessionToken(fmt.Sprintf("session::%d", id)), nil
}

func (i *FakeSessionTokenIssuer) Verify(token SessionToken) (ID, error) {
	var id ID
	if i.ReturnError {
		return id, fmt.Errorf("could not verify session token")
	}
	if _, err := fmt.Sscanf(string(token), "session::%d", &id); err != nil {
		return id, ErrUserDoesNotExist
	}
	return id, nil
}
