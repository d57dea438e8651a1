package authservice

import (
	"context"
	"fmt"
	"time"

	authdomain "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/trip-scorer/app/observability"
	"github.com/Black-And-White-Club/trip-scorer/internal/operation"
	"github.com/Black-And-White-Club/trip-scorer/pkg/httpapi"
	"github.com/Black-And-White-Club/trip-scorer/pkg/results"
	"go.opentelemetry.io/otel/attribute"
)

// AuthService implements Service.
type AuthService struct {
	provider   authjwt.Provider
	defaultTTL time.Duration
	telemetry  operation.Telemetry
}

var _ Service = (*AuthService)(nil)

// NewService creates a new AuthService. A nil provider disables issuing.
func NewService(provider authjwt.Provider, defaultTTL time.Duration, obs observability.Observability) *AuthService {
	return &AuthService{
		provider:   provider,
		defaultTTL: defaultTTL,
		telemetry:  operation.NewTelemetry("auth", obs),
	}
}

func (s *AuthService) IssueToken(ctx context.Context, req IssueTokenRequest) (results.OperationResult[TokenResponse, error], error) {
	attrs := []attribute.KeyValue{operation.Attr("subject", req.Subject)}
	return operation.Run(ctx, s.telemetry, "IssueToken", attrs, func(ctx context.Context) (results.OperationResult[TokenResponse, error], error) {
		if s.provider == nil {
			return results.FailureResult[TokenResponse, error](ErrAuthDisabled), nil
		}
		if err := httpapi.Validate(req); err != nil {
			return results.FailureResult[TokenResponse, error](err), nil
		}

		ttl := req.TTL
		if ttl <= 0 {
			ttl = s.defaultTTL
		}
		expiresAt := time.Now().Add(ttl)

		token, err := s.provider.GenerateToken(req.Subject, req.Role, ttl)
		if err != nil {
			return results.OperationResult[TokenResponse, error]{}, fmt.Errorf("generate token: %w", err)
		}

		return results.SuccessResult[TokenResponse, error](TokenResponse{Token: token, ExpiresAt: expiresAt}), nil
	})
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (results.OperationResult[*authdomain.Claims, error], error) {
	return operation.Run(ctx, s.telemetry, "Authenticate", nil, func(ctx context.Context) (results.OperationResult[*authdomain.Claims, error], error) {
		if s.provider == nil {
			return results.FailureResult[*authdomain.Claims, error](ErrAuthDisabled), nil
		}
		claims, err := s.provider.ValidateToken(token)
		if err != nil {
			return results.FailureResult[*authdomain.Claims, error](fmt.Errorf("%w: %v", ErrUnauthorized, err)), nil
		}
		return results.SuccessResult[*authdomain.Claims, error](claims), nil
	})
}
