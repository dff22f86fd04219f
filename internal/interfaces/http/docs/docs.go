// Package docs registers the OpenAPI description served under /swagger.
// Keep it in step with the @Router annotations of the ticket handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"Bearer": []}],
    "paths": {
        "/tickets": {
            "get": {
                "tags": ["Tickets"],
                "summary": "List tickets",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["NEW", "INP", "WAI", "RES", "CLO"]},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "protocol", "in": "query", "type": "string"},
                    {"name": "assignee_id", "in": "query", "type": "integer"},
                    {"name": "created_by", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string", "enum": ["created_at", "updated_at", "protocol", "status", "priority"]},
                    {"name": "sort_order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer", "default": 1},
                    {"name": "page_size", "in": "query", "type": "integer", "default": 20, "maximum": 100}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            },
            "post": {
                "tags": ["Tickets"],
                "summary": "Open a ticket",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTicketRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/tickets/{id}": {
            "get": {
                "tags": ["Tickets"],
                "summary": "Get a ticket",
                "parameters": [{"$ref": "#/parameters/TicketID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/tickets/{id}/status": {
            "patch": {
                "tags": ["Tickets"],
                "summary": "Change ticket status",
                "parameters": [
                    {"$ref": "#/parameters/TicketID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/tickets/{id}/assignee": {
            "patch": {
                "tags": ["Tickets"],
                "summary": "Assign or unassign a ticket",
                "parameters": [
                    {"$ref": "#/parameters/TicketID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignTicketRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        },
        "/tickets/{id}/comments": {
            "post": {
                "tags": ["Tickets"],
                "summary": "Comment on a ticket",
                "parameters": [
                    {"$ref": "#/parameters/TicketID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCommentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        },
        "/tickets/{id}/attachments": {
            "post": {
                "tags": ["Tickets"],
                "summary": "Attach files to a ticket",
                "parameters": [
                    {"$ref": "#/parameters/TicketID"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddAttachmentsRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        },
        "/tickets/{id}/audit": {
            "get": {
                "tags": ["Tickets"],
                "summary": "Ticket audit trail, oldest first",
                "parameters": [{"$ref": "#/parameters/TicketID"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/APIResponse"}}
                }
            }
        },
        "/departments": {
            "get": {
                "tags": ["Departments"],
                "summary": "List departments with their categories",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/APIResponse"}}}
            }
        }
    },
    "parameters": {
        "TicketID": {"name": "id", "in": "path", "required": true, "type": "integer"}
    },
    "definitions": {
        "APIResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "message": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "type": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "string"}
                    }
                }
            }
        },
        "Attachment": {
            "type": "object",
            "required": ["original_name"],
            "properties": {
                "original_name": {"type": "string", "maxLength": 255},
                "file_reference": {"type": "string", "maxLength": 512},
                "mime_type": {"type": "string"},
                "size": {"type": "integer", "minimum": 0}
            }
        },
        "CreateTicketRequest": {
            "type": "object",
            "required": ["title", "description", "department"],
            "properties": {
                "title": {"type": "string", "maxLength": 120},
                "description": {"type": "string", "maxLength": 10000},
                "department": {"type": "string", "example": "ICT"},
                "priority": {"type": "string", "enum": ["LOW", "MED", "HIGH", "BLK"]},
                "impact": {"type": "string", "enum": ["ONE", "TEAM", "DEPT", "SITE"]},
                "urgency": {"type": "string", "enum": ["LOW", "MED", "HIGH"]},
                "source_channel": {"type": "string", "enum": ["WEB", "EML", "TEL"]},
                "location": {"type": "string", "maxLength": 120},
                "asset_code": {"type": "string", "maxLength": 60},
                "attachments": {"type": "array", "items": {"$ref": "#/definitions/Attachment"}}
            }
        },
        "ChangeStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["NEW", "INP", "WAI", "RES", "CLO"]}}
        },
        "AssignTicketRequest": {
            "type": "object",
            "properties": {"assignee_id": {"type": "integer", "x-nullable": true}}
        },
        "AddCommentRequest": {
            "type": "object",
            "required": ["body"],
            "properties": {
                "body": {"type": "string"},
                "is_internal": {"type": "boolean"}
            }
        },
        "AddAttachmentsRequest": {
            "type": "object",
            "required": ["files"],
            "properties": {"files": {"type": "array", "items": {"$ref": "#/definitions/Attachment"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "aticket API",
	Description:      "Department ticketing with weekly protocol numbers and an audit trail.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
