// Package docs registers the OpenAPI document served under /swagger.
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
    "paths": {
        "/": {
            "get": {
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Welcome",
                "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}}}
            }
        },
        "/users/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Register",
                "parameters": [
                    {"description": "Account", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.RegisterInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.LoginInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/userEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/users/auth": {
            "get": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/userEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/users/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/message"}}}
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List projects",
                "parameters": [
                    {"type": "string", "description": "Substring of name or description", "name": "search", "in": "query"},
                    {"enum": ["not-started", "in-progress", "completed"], "type": "string", "description": "Status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Project"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create project",
                "parameters": [
                    {"description": "Project", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProjectInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Get project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "put": {
                "security": [{"CookieAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Replace project",
                "parameters": [
                    {"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true},
                    {"description": "Project", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.ProjectInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Project"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            },
            "delete": {
                "security": [{"CookieAuth": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete project",
                "parameters": [{"type": "string", "description": "Project ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/deleteResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/message"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/files/upload": {
            "post": {
                "security": [{"CookieAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "Upload image",
                "parameters": [{"type": "file", "description": "Image", "name": "file", "in": "formData", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Image"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/message"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/message"}}
                }
            }
        },
        "/ws": {
            "get": {
                "tags": ["projects"],
                "summary": "Project feed",
                "parameters": [
                    {"type": "string", "name": "search", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "string", "name": "interval", "in": "query"},
                    {"type": "integer", "name": "interval_ms", "in": "query"}
                ],
                "responses": {"101": {"description": "Switching Protocols"}}
            }
        }
    },
    "definitions": {
        "message": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "deleteResult": {
            "type": "object",
            "properties": {"acknowledged": {"type": "boolean"}, "deletedCount": {"type": "integer"}}
        },
        "userEnvelope": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/models.Identity"}}
        },
        "models.Identity": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "models.User": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Owner": {
            "type": "object",
            "properties": {"_id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "models.Project": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "status": {"type": "string", "enum": ["not-started", "in-progress", "completed"]},
                "imageId": {"type": "string"},
                "imageUrl": {"type": "string"},
                "owner": {"$ref": "#/definitions/models.Owner"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "models.Image": {
            "type": "object",
            "properties": {"imageId": {"type": "string"}, "imageUrl": {"type": "string"}}
        },
        "service.RegisterInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "service.LoginInput": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "service.ProjectInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "status": {"type": "string", "enum": ["not-started", "in-progress", "completed"]},
                "imageId": {"type": "string"},
                "imageUrl": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "name": "accessToken", "in": "cookie"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Project Space API",
	Description:      "Project tracking backend: accounts, cookie sessions and owner-only project management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
