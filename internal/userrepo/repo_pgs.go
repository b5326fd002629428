// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/ledger/internal/domain"
	"github.com/go-petr/ledger/pkg/dbpkg"
	"github.com/go-petr/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const userColumns = `username, hashed_password, full_name, email, role, password_changed_at, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.Username,
		&u.HashedPassword,
		&u.FullName,
		&u.Email,
		&u.Role,
		&u.PasswordChangedAt,
		&u.CreatedAt,
	)

	return u, err
}

// An empty role falls back to member.
const createQuery = `
INSERT INTO users (
    username,
    hashed_password,
    full_name,
    email,
    role
) VALUES (
    $1, $2, $3, $4, COALESCE(NULLIF($5, ''), 'member')
) RETURNING ` + userColumns

// Create creates the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.Username,
		arg.HashedPassword,
		arg.FullName,
		arg.Email,
		arg.Role,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				switch pqErr.Constraint {
				case "users_pkey":
					return domain.User{}, domain.ErrUsernameAlreadyExists
				case "users_email_key":
					return domain.User{}, domain.ErrEmailALreadyExists
				}
			}
		}

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}

const getQuery = `
SELECT ` + userColumns + `
FROM users
WHERE username = $1
`

// Get returns the user with the given username.
func (r *RepoPGS) Get(ctx context.Context, username string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, getQuery, username))
	if err != nil {
		if err == sql.ErrNoRows {
			l.Info().Err(err).Str("username", username).Send()
			return domain.User{}, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return domain.User{}, errorspkg.ErrInternal
	}

	return u, nil
}
