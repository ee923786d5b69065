package links

import (
	"context"

	"github.com/xrcouture/VideostreamBackend/internal/server/models"
)

// Repository provides access to one-time link records, one per email.
type Repository interface {
	// GetByEmail returns the record for the given email, or
	// common.ErrorNotFound if no record exists.
	GetByEmail(ctx context.Context, email string) (*models.OneTimeLink, error)

	// ClaimToken assigns the token to the record for the given email,
	// provided no token has been assigned yet. It reports whether the
	// claim matched a record; false means the record is missing or its
	// token was already set (possibly by a concurrent request).
	ClaimToken(ctx context.Context, email string, token string) (bool, error)
}
