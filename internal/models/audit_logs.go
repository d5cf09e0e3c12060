package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB maps a Postgres jsonb column for free-form detail payloads.
type JSONB map[string]interface{}

// AuditLog records one administrative mutation: who did what to which
// entity. Entries are append-only; retention cleanup is the only deletion
// path.
type AuditLog struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     *uuid.UUID `json:"user_id" db:"user_id"`
	Action     string     `json:"action" db:"action"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   string     `json:"entity_id" db:"entity_id"`
	Details    JSONB      `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}

// Audit action names. The entity id and detail payload carry the specifics.
const (
	AuditMenuUpsert     = "menu.upsert"
	AuditSubmenuUpsert  = "submenu.upsert"
	AuditNodeSetActive  = "node.set_active"
	AuditNodesReorder   = "nodes.reorder"
	AuditRoleCreate     = "role.create"
	AuditRoleUpdate     = "role.update"
	AuditRoleDelete     = "role.delete"
	AuditPermCreate     = "permission.create"
	AuditPermUpdate     = "permission.update"
	AuditRolePermsSet   = "role.permissions.set"
	AuditUserRoleGrant  = "user.role.grant"
	AuditUserRoleRevoke = "user.role.revoke"
	AuditLogoUpload     = "branding.logo.upload"
	AuditRequestFailed  = "http.request.failed"
)

// AuditLogFilters narrows audit log queries.
type AuditLogFilters struct {
	UserID     *uuid.UUID `json:"user_id"`
	Action     *string    `json:"action"`
	EntityType *string    `json:"entity_type"`
	EntityID   *string    `json:"entity_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}
