package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in API tokens
const (
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// Claims represents JWT custom claims
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// CanWrite reports whether the token may create or modify meetings
func (c *Claims) CanWrite() bool {
	return c.Role == RoleEditor
}
