// Package docs registers the OpenAPI document served under /swagger.
// The annotations live on the handlers in internal/api/handler.
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
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}
            }
        },
        "/nav": {
            "get": {
                "produces": ["application/json"],
                "tags": ["navigation"],
                "summary": "Navigation decision",
                "parameters": [
                    {"type": "string", "description": "Frontend path, e.g. /dashboard/vendor", "name": "path", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.navResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/event/{eventId}/table/{tableNumber}/cart": {
            "get": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Get the table cart",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "name": "tableNumber", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cartResponse"}}}
            },
            "delete": {
                "tags": ["cart"],
                "summary": "Empty the cart",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "name": "tableNumber", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/event/{eventId}/table/{tableNumber}/cart/items": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Add an item to the cart",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "name": "tableNumber", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.addItemRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cartResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/event/{eventId}/table/{tableNumber}/cart/items/{itemId}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Set an item's quantity (0 removes it)",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "name": "tableNumber", "in": "path", "required": true},
                    {"type": "string", "name": "itemId", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.setQuantityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.cartResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/event/{eventId}/table/{tableNumber}/cart/submit": {
            "post": {
                "produces": ["application/json"],
                "tags": ["cart"],
                "summary": "Place the cart as an order",
                "parameters": [
                    {"type": "string", "name": "eventId", "in": "path", "required": true},
                    {"type": "string", "name": "tableNumber", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.submitResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        },
        "/orders/{id}/status": {
            "patch": {
                "consumes": ["application/json"],
                "tags": ["orders"],
                "summary": "Update an order's status",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.updateStatusRequest"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.errorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/handler.errorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "MANAGER", "VENDOR", "GUEST"]}
            }
        },
        "handler.loginResponse": {
            "type": "object",
            "properties": {"profile": {"$ref": "#/definitions/handler.profile"}, "home": {"type": "string"}}
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "profile": {"$ref": "#/definitions/handler.profile"},
                "home": {"type": "string"}
            }
        },
        "handler.navResponse": {
            "type": "object",
            "properties": {
                "path": {"type": "string"},
                "decision": {"type": "string", "enum": ["ALLOW", "REDIRECT_LOGIN", "REDIRECT_UNAUTHORIZED"]},
                "redirect": {"type": "string"}
            }
        },
        "handler.addItemRequest": {
            "type": "object",
            "required": ["item_id", "name"],
            "properties": {
                "item_id": {"type": "string"},
                "name": {"type": "string"},
                "unit_price": {"type": "number"},
                "quantity": {"type": "integer", "default": 1}
            }
        },
        "handler.setQuantityRequest": {
            "type": "object",
            "required": ["quantity"],
            "properties": {"quantity": {"type": "integer"}}
        },
        "handler.cartLineResponse": {
            "type": "object",
            "properties": {
                "item_id": {"type": "string"},
                "name": {"type": "string"},
                "quantity": {"type": "integer"},
                "unit_price": {"type": "number"},
                "subtotal": {"type": "number"}
            }
        },
        "handler.cartResponse": {
            "type": "object",
            "properties": {
                "lines": {"type": "array", "items": {"$ref": "#/definitions/handler.cartLineResponse"}},
                "total": {"type": "number"},
                "item_count": {"type": "integer"}
            }
        },
        "handler.submitResponse": {
            "type": "object",
            "properties": {"order_id": {"type": "string"}, "status": {"type": "string"}}
        },
        "handler.updateStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["PENDING", "IN_PROGRESS", "READY", "SERVED"]}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Table Ordering Gateway",
	Description:      "Session gate and guest cart in front of the event ordering API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
