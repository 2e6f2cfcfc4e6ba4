package ports

import (
	"context"

	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
)

// AuthClient is the remote login endpoint.
// Failures are returned as *domain.AuthError.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (token string, profile *domain.Profile, err error)
}
