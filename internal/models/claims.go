package models

import "github.com/golang-jwt/jwt/v5"

// Operator permissions
const (
	PermissionRead    = "crm:read"
	PermissionWrite   = "crm:write"
	PermissionFunding = "crm:funding"
)

const (
	RoleAdmin       = "admin"
	RoleUnderwriter = "underwriter"
	RoleCollections = "collections"
	RoleReadOnly    = "viewer"
)

// OperatorClaims are the claims carried by a back-office bearer token. The
// registered subject identifies the operator and is recorded as
// created_by / deleted_by on writes.
type OperatorClaims struct {
	jwt.RegisteredClaims
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *OperatorClaims) HasPermission(permission string) bool {
	if c.Role == RoleAdmin {
		return true
	}
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{PermissionRead, PermissionWrite, PermissionFunding}
	case RoleUnderwriter:
		return []string{PermissionRead, PermissionWrite, PermissionFunding}
	case RoleCollections:
		return []string{PermissionRead, PermissionWrite}
	case RoleReadOnly:
		return []string{PermissionRead}
	default:
		return []string{}
	}
}
