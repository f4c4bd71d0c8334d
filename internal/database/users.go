package database

import (
	"context"
	"errors"
	"time"

	"github.com/GS-Chaves/Projeto-Don-t-Answer-Me-back/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrDuplicateEmail = errors.New("já existe um usuário com este e-mail")
	ErrUserNotFound   = errors.New("usuário não encontrado")
)

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT
			email,
			password_hash,
			full_name,
			institution,
			request_count,
			last_reset,
			created_at
		FROM users
		WHERE email = $1
	`
	var user models.User

	err := q.db.QueryRow(ctx, query, email).Scan(
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Institution,
		&user.RequestCount,
		&user.LastReset,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	FullName     *string
	Institution  *string
	LastReset    time.Time
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, full_name, institution, request_count, last_reset)
		VALUES ($1, $2, $3, $4, 0, $5)
		RETURNING email, password_hash, full_name, institution, request_count, last_reset, created_at
	`
	row := q.db.QueryRow(ctx, query,
		arg.Email,
		arg.PasswordHash,
		arg.FullName,
		arg.Institution,
		arg.LastReset,
	)

	var user models.User
	err := row.Scan(
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Institution,
		&user.RequestCount,
		&user.LastReset,
		&user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &user, nil
}

// ListUsers never selects password_hash; the hash has no business in any
// read model.
func (q *Queries) ListUsers(ctx context.Context, limit int, offset int) ([]models.User, error) {
	query := `
		SELECT email, full_name, institution, request_count, last_reset, created_at
		FROM users
		ORDER BY email LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.Email,
			&user.FullName,
			&user.Institution,
			&user.RequestCount,
			&user.LastReset,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if users == nil {
		return []models.User{}, nil
	}

	return users, nil
}

type SeedUserParams struct {
	Email        string
	PasswordHash string
	FullName     *string
	Institution  *string
}

// SeedUsers inserts the pre-provisioned accounts, leaving existing rows
// untouched so restarts never reset anyone's counter.
func (q *Queries) SeedUsers(ctx context.Context, users []SeedUserParams, period time.Time) error {
	query := `
		INSERT INTO users (email, password_hash, full_name, institution, request_count, last_reset)
		VALUES ($1, $2, $3, $4, 0, $5)
		ON CONFLICT (email) DO NOTHING
	`
	for _, u := range users {
		if _, err := q.db.Exec(ctx, query, u.Email, u.PasswordHash, u.FullName, u.Institution, period); err != nil {
			return err
		}
	}
	return nil
}
