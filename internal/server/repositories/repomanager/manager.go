package repomanager

import (
	"context"
	"database/sql"

	"github.com/xrcouture/VideostreamBackend/internal/dbx"
	"github.com/xrcouture/VideostreamBackend/internal/server/repositories/links"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Links(db dbx.DBTX) links.Repository
}
