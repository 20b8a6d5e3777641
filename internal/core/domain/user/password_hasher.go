package user

// PasswordHasher is a one-way salted hashing primitive. Implementations must
// panic on an empty password: the length policy lives at the input boundary,
// an empty value reaching the hasher is a programming error.
type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}
