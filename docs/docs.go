// Package docs registra a especificação Swagger servida em /swagger.
// Mantida à mão a partir das anotações dos Handlers.
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
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Lista os usuários",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Cria um novo usuário",
                "parameters": [
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.User"}}
                ],
                "responses": {
                    "201": {"description": "Usuário criado", "schema": {"$ref": "#/definitions/domain.User"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Atualiza um usuário",
                "parameters": [
                    {"name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.User"}}
                ],
                "responses": {
                    "200": {"description": "Usuário atualizado", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Usuário não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Obtém um usuário por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.User"}},
                    "404": {"description": "Usuário não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/users/{id}/friends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Lista os amigos de um usuário",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
                }
            }
        },
        "/users/{id}/friends/{friendId}": {
            "put": {
                "tags": ["friends"],
                "summary": "Adiciona um amigo",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "friendId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["friends"],
                "summary": "Remove um amigo",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "friendId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/users/{id}/friends/common/{otherId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["friends"],
                "summary": "Lista os amigos em comum",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "otherId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.User"}}}
                }
            }
        },
        "/films": {
            "get": {
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Lista os filmes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Film"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Cria um novo filme",
                "parameters": [
                    {"name": "film", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Film"}}
                ],
                "responses": {
                    "201": {"description": "Filme criado", "schema": {"$ref": "#/definitions/domain.Film"}},
                    "400": {"description": "Payload inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Atualiza um filme",
                "parameters": [
                    {"name": "film", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.Film"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Film"}},
                    "404": {"description": "Filme não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/films/popular": {
            "get": {
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Ranking de popularidade",
                "parameters": [{"type": "integer", "default": 10, "name": "count", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Film"}}},
                    "400": {"description": "count inválido", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/films/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["films"],
                "summary": "Obtém um filme por ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Film"}},
                    "404": {"description": "Filme não encontrado", "schema": {"$ref": "#/definitions/domain.ErrorResponse"}}
                }
            }
        },
        "/films/{id}/likes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["likes"],
                "summary": "Lista quem curtiu o filme",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "integer"}}}
                }
            }
        },
        "/films/{id}/like/{userId}": {
            "put": {
                "tags": ["likes"],
                "summary": "Curte um filme",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            },
            "delete": {
                "tags": ["likes"],
                "summary": "Remove a curtida",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "userId", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/mpa": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Lista as classificações MPA",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Mpa"}}}
                }
            }
        },
        "/mpa/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Obtém uma classificação MPA",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Mpa"}}
                }
            }
        },
        "/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Lista os gêneros",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/domain.Genre"}}}
                }
            }
        },
        "/genres/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reference"],
                "summary": "Obtém um gênero",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Genre"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "category": {"type": "string", "example": "VALIDATION_ERROR"},
                "message": {"type": "string", "example": "name não pode ser vazio"},
                "requestId": {"type": "string", "example": "5f0c8e52-3c1e-4c55-9d57-0f6c7b1c2a11"}
            }
        },
        "domain.Genre": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "domain.Mpa": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "login": {"type": "string"},
                "name": {"type": "string"},
                "birthday": {"type": "string", "example": "1990-05-17"}
            }
        },
        "domain.Film": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "releaseDate": {"type": "string", "example": "1999-03-31"},
                "duration": {"type": "integer"},
                "mpa": {"$ref": "#/definitions/domain.Mpa"},
                "genres": {"type": "array", "items": {"$ref": "#/definitions/domain.Genre"}},
                "likes": {"type": "array", "items": {"type": "integer"}}
            }
        }
    }
}`

// SwaggerInfo contém as informações exportadas da API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "GoCine API",
	Description:      "Catálogo social de filmes: usuários, amizades, curtidas e ranking de popularidade.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
