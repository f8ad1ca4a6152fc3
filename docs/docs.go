// Package docs holds the Swagger document served at /swagger/*.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handlers.userView"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        },
        "/users/authenticate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Authenticate",
                "parameters": [{"description": "credentials", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authenticateRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        },
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register user",
                "parameters": [{"description": "registration payload", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.registerRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        },
        "/users/update_password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Update password",
                "parameters": [{"description": "email and new password", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.updatePasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        },
        "/users/forgot_password": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Forgot password",
                "parameters": [{"description": "account email", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.forgotPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Get user by ID",
                "parameters": [{"type": "integer", "description": "user ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.userView"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Delete user",
                "parameters": [{"type": "integer", "description": "user ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/presenter.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authenticateRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.forgotPasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}}
        },
        "handlers.registerRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "fullname": {"type": "string"},
                "organization": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "handlers.updatePasswordRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.userView": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "fullname": {"type": "string"},
                "id": {"type": "integer"},
                "organization": {"type": "string"},
                "role": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "presenter.Envelope": {
            "type": "object",
            "properties": {
                "body": {},
                "status": {"$ref": "#/definitions/presenter.Status"}
            }
        },
        "presenter.Status": {
            "type": "object",
            "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token. Accepted as \"Bearer <JWT>\" or \"<JWT>\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "accounts-service API",
	Description:      "User accounts: authentication, registration, password reset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
