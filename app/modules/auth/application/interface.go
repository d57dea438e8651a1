package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/domain"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
)

// Service issues and checks scorekeeper tokens.
type Service interface {
	IssueToken(ctx context.Context, req IssueTokenRequest) (results.OperationResult[TokenResponse, error], error)
	Authenticate(ctx context.Context, token string) (results.OperationResult[*authdomain.Claims, error], error)
}

// IssueTokenRequest names the bearer of a new token.
type IssueTokenRequest struct {
	Subject string          `validate:"required,max=80"`
	Role    authdomain.Role `validate:"required,oneof=viewer scorekeeper admin"`
	TTL     time.Duration
}

// TokenResponse carries a signed token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
