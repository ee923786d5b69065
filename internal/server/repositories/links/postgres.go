package links

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xrcouture/VideostreamBackend/internal/common"
	"github.com/xrcouture/VideostreamBackend/internal/dbx"
	"github.com/xrcouture/VideostreamBackend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.OneTimeLink, error) {
	query :=
		`SELECT id, email, access_token, click_count FROM one_time_links
		 WHERE email = $1
		 `

	link := &models.OneTimeLink{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&link.ID, &link.Email, &link.AccessToken, &link.ClickCount)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return link, nil
}

// ClaimToken is the single conditional write that enforces one-time
// issuance: the "access_token IS NULL" guard makes concurrent claims for
// the same email resolve to exactly one winner.
func (r *PostgresRepository) ClaimToken(ctx context.Context, email string, token string) (bool, error) {
	query :=
		`UPDATE one_time_links SET access_token = $2
		 WHERE email = $1 AND access_token IS NULL
		 `

	res, err := r.db.ExecContext(ctx, query, email, token)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return matched > 0, nil
}
