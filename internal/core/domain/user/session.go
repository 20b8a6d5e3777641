package user

type SessionToken string

// SessionTokenIssuer is a pure signing primitive: it never touches the user
// repository, so the session lifetime policy can change without touching
// account state.
type SessionTokenIssuer interface {
	Issue(id ID) (SessionToken, error)
	Verify(token SessionToken) (ID, error)
}
