package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Role groups permissions for assignment to users. Users themselves live in
// the external identity system; only their UUIDs appear in assignments.
type Role struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Permission names a grantable capability. Code is the opaque string
// submenus reference; it is immutable after creation so stored references
// never dangle.
type Permission struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Code        string    `json:"code" db:"code" validate:"required"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// RolePermission links a role to a permission.
type RolePermission struct {
	ID           uuid.UUID `json:"id" db:"id"`
	RoleID       uuid.UUID `json:"role_id" db:"role_id"`
	PermissionID uuid.UUID `json:"permission_id" db:"permission_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// UserRole links an externally managed user to a role.
type UserRole struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	RoleID    uuid.UUID `json:"role_id" db:"role_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Principal is an authenticated actor requesting navigation or performing
// an administrative mutation.
type Principal struct {
	UserID uuid.UUID
}

// PermissionSet is a deduplicated set of permission codes. Codes are opaque
// strings matched case-sensitively by exact membership.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from codes, dropping duplicates.
func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Has reports whether code is a member of the set.
func (s PermissionSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Sorted returns the codes in ascending order. Fingerprinting depends on
// this order being stable.
func (s PermissionSet) Sorted() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
