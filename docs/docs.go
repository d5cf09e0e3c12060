// Package docs provides the swagger spec served at /swagger. The template
// is maintained by hand; keep it in sync with the routes in cmd/main.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/navigation": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["navigation"],
                "summary": "Authorized navigation tree for the caller",
                "description": "Resolves the caller's permission set and projects the menu tree: inactive nodes dropped, permission-gated submenus filtered, empty menus pruned. Includes the registry version and, when configured, a presigned logo URL.",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NavigationResponse"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "503": {"description": "Permission authority unavailable", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/branding/logo": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["branding"],
                "summary": "Presigned URL of the uploaded logo",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No logo uploaded", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/menus": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "List all menus including inactive ones",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Requires menus.manage", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Create a menu",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"name": "menu", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertMenuRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Menu"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/menus/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Update a menu",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "menu", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertMenuRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Menu"}},
                    "404": {"description": "Menu not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/menus/{id}/active": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Activate or deactivate a menu",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Menu not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/menus/reorder": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Reorder menus",
                "consumes": ["application/json"],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReorderRequest"}}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Unknown menu id", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/menus/{id}/submenus": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "List submenus of a menu including inactive ones",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/menus/{id}/submenus/reorder": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Reorder submenus within a menu",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReorderRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/menus/export": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Export the full registry as a spreadsheet",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "responses": {"200": {"description": "xlsx attachment"}}
            }
        },
        "/admin/submenus": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Create a submenu",
                "consumes": ["application/json"],
                "parameters": [{"name": "submenu", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSubmenuRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Submenu"}},
                    "422": {"description": "Parent menu does not exist", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/submenus/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Update a submenu",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "submenu", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertSubmenuRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Submenu"}},
                    "422": {"description": "Parent menu does not exist", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/submenus/{id}/active": {
            "patch": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Activate or deactivate a submenu",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "integer", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetActiveRequest"}}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/navigation/version": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Current registry version counter",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/navigation/cache-stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["registry"],
                "summary": "Projection cache hit/miss counters",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/branding/logo": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["branding"],
                "summary": "Upload the logo shown next to the navigation tree",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "logo", "in": "formData", "type": "file", "required": true}],
                "responses": {
                    "201": {"description": "Uploaded"},
                    "400": {"description": "Unsupported type or too large", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/admin/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "List roles",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Create a role",
                "consumes": ["application/json"],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/roles/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Get a role",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Role not found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Update a role",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Delete a role and invalidate affected users",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/roles/{id}/permissions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "List a role's permissions",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Replace a role's permission set",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/permissions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "List permission codes",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Create a permission code",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/admin/permissions/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Update a permission description (codes are immutable)",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{id}/roles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "List a user's roles",
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/users/{id}/roles/{roleId}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Grant a role to a user",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "roleId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"201": {"description": "Granted"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["rbac"],
                "summary": "Revoke a role from a user",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "roleId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "Revoked"}}
            }
        },
        "/admin/audit-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["audit"],
                "summary": "Query the audit trail, newest first",
                "parameters": [
                    {"name": "action", "in": "query", "type": "string"},
                    {"name": "entity_type", "in": "query", "type": "string"},
                    {"name": "entity_id", "in": "query", "type": "string"},
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "start_date", "in": "query", "type": "string"},
                    {"name": "end_date", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/jobs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Background job status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/jobs/audit-retention/run": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["jobs"],
                "summary": "Run audit retention cleanup now",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "Menu": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "title": {"type": "string"},
                "icon": {"type": "string"},
                "sort_order": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "created_at": {"type": "string"}
            }
        },
        "Submenu": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "menu_id": {"type": "integer"},
                "title": {"type": "string"},
                "endpoint": {"type": "string"},
                "url": {"type": "string"},
                "icon": {"type": "string"},
                "sort_order": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "permission_code": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "NavigationResponse": {
            "type": "object",
            "properties": {
                "menus": {"type": "array", "items": {"type": "object"}},
                "logo_url": {"type": "string"},
                "version": {"type": "integer"}
            }
        },
        "UpsertMenuRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "icon": {"type": "string"},
                "sort_order": {"type": "integer"},
                "is_active": {"type": "boolean"}
            }
        },
        "UpsertSubmenuRequest": {
            "type": "object",
            "required": ["menu_id", "title"],
            "properties": {
                "menu_id": {"type": "integer"},
                "title": {"type": "string"},
                "endpoint": {"type": "string"},
                "url": {"type": "string"},
                "icon": {"type": "string"},
                "sort_order": {"type": "integer"},
                "is_active": {"type": "boolean"},
                "permission_code": {"type": "string"}
            }
        },
        "SetActiveRequest": {
            "type": "object",
            "required": ["is_active"],
            "properties": {"is_active": {"type": "boolean"}}
        },
        "ReorderRequest": {
            "type": "object",
            "required": ["ordered_ids"],
            "properties": {"ordered_ids": {"type": "array", "items": {"type": "integer"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "NavHub API",
	Description:      "Permission-aware navigation engine: resolves per-principal permission sets and projects the authorized menu tree.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
