package database

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// ConsumeQuota performs the whole check-reset-increment of the monthly
// counter in one conditional UPDATE, so the row lock serializes concurrent
// calls for the same user. A row whose last_reset is an older period starts
// over at 1; a row already in the given period only advances while below the
// limit. Returns the new counter and false when the ceiling was hit (no
// mutation in that case), or ErrUserNotFound when no row exists for the
// e-mail.
func (q *Queries) ConsumeQuota(ctx context.Context, email string, period time.Time, limit int) (int, bool, error) {
	query := `
		UPDATE users
		SET request_count = CASE WHEN last_reset = $2 THEN request_count + 1 ELSE 1 END,
		    last_reset = $2
		WHERE email = $1
		  AND (last_reset <> $2 OR request_count < $3)
		RETURNING request_count
	`
	var count int
	err := q.db.QueryRow(ctx, query, email, period, limit).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// nenhuma linha atualizada: ou o teto barrou, ou o usuário não existe
			var exists bool
			existsQuery := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
			if err := q.db.QueryRow(ctx, existsQuery, email).Scan(&exists); err != nil {
				return 0, false, err
			}
			if !exists {
				return 0, false, ErrUserNotFound
			}
			return 0, false, nil
		}
		return 0, false, err
	}

	return count, true, nil
}
