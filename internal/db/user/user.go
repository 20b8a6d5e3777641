package user

import (
	"context"
	"database/sql"
	"errors"
	c "signon/internal/core/domain/common"
	"signon/internal/core/domain/user"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, name, email, password_hash, reset_fingerprint, reset_expires_at, created_at`

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgxUserRepository struct {
	db Querier
}

func NewPgxRepository(db Querier) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (name, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		input.Name,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE id = $1`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) GetByResetFingerprint(
	ctx context.Context,
	fingerprint user.ResetTokenFingerprint,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE reset_fingerprint = $1`,
		string(fingerprint),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (r *PgxUserRepository) SetResetToken(
	ctx context.Context,
	id user.ID,
	fingerprint user.ResetTokenFingerprint,
	expiresAt time.Time,
) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_fingerprint = $2, reset_expires_at = $3 WHERE id = $1`,
		int64(id),
		string(fingerprint),
		expiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) ClearResetToken(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET reset_fingerprint = NULL, reset_expires_at = NULL WHERE id = $1`,
		int64(id),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

// UpdatePassword is a compare-and-set on the reset fingerprint: the WHERE
// clause only matches while the fingerprint is still in place and not
// expired, and the SET clears it, so of two racing calls exactly one row
// update happens.
func (r *PgxUserRepository) UpdatePassword(
	ctx context.Context,
	input user.UpdatePasswordInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		 SET password_hash = $2, reset_fingerprint = NULL, reset_expires_at = NULL
		 WHERE reset_fingerprint = $1 AND reset_expires_at > $3
		 RETURNING `+userColumns,
		string(input.Fingerprint),
		string(input.PasswordHash),
		input.Now,
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrInvalidResetToken
	}
	if err != nil {
		return u, err
	}
	return u, u.Validate()
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id               int64
		name             string
		email            string
		passwordHash     string
		resetFingerprint sql.NullString
		resetExpiresAt   sql.NullTime
		createdAt        time.Time
	)
	err = row.Scan(&id, &name, &email, &passwordHash, &resetFingerprint, &resetExpiresAt, &createdAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Name:         name,
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		ResetFingerprint: c.NewOptional(
			user.ResetTokenFingerprint(resetFingerprint.String),
			resetFingerprint.Valid,
		),
		ResetExpiresAt: c.NewOptional(resetExpiresAt.Time, resetExpiresAt.Valid),
		CreatedAt:      createdAt,
	}, nil
}
