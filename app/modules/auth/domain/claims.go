package authdomain

import "time"

// Claims identifies the bearer of an API token.
type Claims struct {
	Subject   string
	Role      Role
	TokenID   string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// CanWrite reports whether the bearer may record scores and edit the roster.
func (c *Claims) CanWrite() bool {
	return c.Role == RoleScorekeeper || c.Role == RoleAdmin
}
