package services

import (
	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(repos.UserRepo, container.Token)
	container.Library = NewLibraryService(repos.BookRepo, repos.UserRepo)

	return container
}

// Compile-time interface checks for the service implementations.
var (
	_ portssvc.AuthSvcFacade    = (*authService)(nil)
	_ portssvc.TokenSvcFacade   = (*tokenService)(nil)
	_ portssvc.LibrarySvcFacade = (*libraryService)(nil)
)
