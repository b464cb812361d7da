// Package docs registra el documento OpenAPI del backend de desarrollo.
// Regenerar con: swag init -g internal/devbackend/router.go -o internal/devbackend/docs
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
        "/api/auth/login": {
            "post": {
                "description": "Valida correo y contraseña. Devuelve el bearer token y el usuario.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Iniciar sesión",
                "parameters": [
                    {"description": "Credenciales", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.tokenUserResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accounts.messageResponse"}},
                    "401": {"description": "credenciales inválidas", "schema": {"$ref": "#/definitions/accounts.messageResponse"}},
                    "403": {"description": "cuenta deshabilitada", "schema": {"$ref": "#/definitions/accounts.messageResponse"}}
                }
            }
        },
        "/api/auth/verify-token": {
            "get": {
                "description": "Indica si el bearer token sigue vigente. expired=true solo cuando venció.",
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Verificar token",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.VerifyResult"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/accounts.messageResponse"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "description": "Crea una cuenta de cliente (role_id 2) o paseador (role_id 3).",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Registrar cuenta",
                "parameters": [
                    {"description": "Datos de la cuenta", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/accounts.userResponse"}},
                    "400": {"description": "validación", "schema": {"$ref": "#/definitions/accounts.messageResponse"}},
                    "409": {"description": "correo duplicado", "schema": {"$ref": "#/definitions/accounts.messageResponse"}}
                }
            }
        },
        "/api/auth/forgot-password": {
            "post": {
                "description": "Genera un código de un solo uso. La respuesta no revela si el correo existe.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Pedir código de recuperación",
                "parameters": [
                    {"description": "Correo", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.forgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/accounts.messageResponse"}}
                }
            }
        },
        "/api/auth/reset-password": {
            "post": {
                "description": "Consume el código de recuperación, cambia la contraseña y devuelve un token nuevo.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Restablecer contraseña",
                "parameters": [
                    {"description": "Correo, código y contraseña nueva", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/accounts.resetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/accounts.tokenUserResponse"}},
                    "400": {"description": "validación / código inválido", "schema": {"$ref": "#/definitions/accounts.messageResponse"}}
                }
            }
        },
        "/api/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mis mascotas",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.messageResponse"}}
                }
            },
            "post": {
                "description": "Alta de mascota del cliente autenticado. multipart/form-data con los campos del wizard y la foto opcional en ` + "`photo`" + `.",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Registrar mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "Raza", "name": "breed", "in": "formData", "required": true},
                    {"type": "string", "description": "Zona: norte, centro o sur", "name": "zone", "in": "formData", "required": true},
                    {"type": "string", "description": "Nombre (hasta 25 caracteres)", "name": "name", "in": "formData", "required": true},
                    {"type": "integer", "description": "Edad 0..20", "name": "age", "in": "formData", "required": true},
                    {"type": "string", "description": "Descripción", "name": "description", "in": "formData"},
                    {"type": "string", "description": "Comentarios (hasta 250 caracteres)", "name": "comments", "in": "formData"},
                    {"type": "string", "description": "Condición médica", "name": "medical_condition", "in": "formData"},
                    {"type": "file", "description": "Foto JPG o PNG", "name": "photo", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/pets.messageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.messageResponse"}},
                    "403": {"description": "paseadores no registran mascotas", "schema": {"$ref": "#/definitions/pets.messageResponse"}}
                }
            }
        },
        "/api/pets/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Ver mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/pets.messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.messageResponse"}}
                }
            }
        },
        "/api/pets/{petID}/photo": {
            "get": {
                "produces": ["image/jpeg", "image/png"],
                "tags": ["pets"],
                "summary": "Foto de la mascota",
                "parameters": [
                    {"type": "string", "description": "Bearer token", "name": "Authorization", "in": "header", "required": true},
                    {"type": "string", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/pets.messageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "auth.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "role_id": {"type": "integer", "enum": [1, 2, 3]},
                "role_name": {"type": "string"},
                "enabled": {"type": "boolean"}
            }
        },
        "auth.VerifyResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "expired": {"type": "boolean"}
            }
        },
        "accounts.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "accounts.registerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "password": {"type": "string"},
                "role_id": {"type": "integer", "enum": [2, 3]}
            }
        },
        "accounts.forgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"}
            }
        },
        "accounts.resetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "code": {"type": "string"},
                "new_password": {"type": "string"}
            }
        },
        "accounts.tokenUserResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/auth.User"}
            }
        },
        "accounts.userResponse": {
            "type": "object",
            "properties": {
                "user": {"$ref": "#/definitions/auth.User"}
            }
        },
        "accounts.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "pets.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "owner_user_id": {"type": "integer"},
                "name": {"type": "string"},
                "breed": {"type": "string"},
                "zone": {"type": "string", "enum": ["norte", "centro", "sur"]},
                "age": {"type": "integer"},
                "description": {"type": "string"},
                "comments": {"type": "string"},
                "medical_condition": {"type": "string"},
                "photo_url": {"type": "string"},
                "created_at": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pet Walks dev backend",
	Description:      "Backend local de desarrollo: auth (JWT) y alta de mascotas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
