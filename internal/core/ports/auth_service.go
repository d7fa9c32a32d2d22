package ports

import (
	"context"

	"github.com/cinecritic/review-system/internal/core/domain"
)

// RegisterInput carries all data needed to create an account. The two flags
// arrive from the payload as-is; role derivation happens at read time.
type RegisterInput struct {
	Username    string
	Password    string
	FirstName   string
	LastName    string
	IsStaff     bool
	IsSuperuser bool
}

// AuthService implements account creation and credential exchange.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies the credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
}
