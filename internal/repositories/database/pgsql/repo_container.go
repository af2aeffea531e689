package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider constructs all pgsql-backed repositories for the
// service container.
func NewRepositoryProvider(db *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo: newPgxUserRepository(db),
		BookRepo: newPgxBookRepository(db),
	}
}
