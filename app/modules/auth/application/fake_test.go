package authservice

import (
	"time"

	authdomain "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/trip-scorer/app/modules/auth/infrastructure/jwt"
)

// FakeJWTProvider is a programmable authjwt.Provider.
type FakeJWTProvider struct {
	GenerateTokenFunc func(subject string, role authdomain.Role, ttl time.Duration) (string, error)
	ValidateTokenFunc func(token string) (*authdomain.Claims, error)
	trace             []string
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

func (f *FakeJWTProvider) GenerateToken(subject string, role authdomain.Role, ttl time.Duration) (string, error) {
	f.trace = append(f.trace, "GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(subject, role, ttl)
	}
	return "token", nil
}

func (f *FakeJWTProvider) ValidateToken(token string) (*authdomain.Claims, error) {
	f.trace = append(f.trace, "ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(token)
	}
	return nil, authjwt.ErrInvalidToken
}
