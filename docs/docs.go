// Package docs registers the OpenAPI description of the catalog API with
// swag, for the /swagger routes of the HTTP server.
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
        "/api/actors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["people"],
                "summary": "Search Actors",
                "parameters": [
                    {"type": "string", "description": "Substring of first, last or full name", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/movie.Person"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/api/directors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["people"],
                "summary": "Search Directors",
                "parameters": [
                    {"type": "string", "description": "Substring of first, last or full name", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/movie.Person"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/api/genres": {
            "get": {
                "produces": ["application/json"],
                "tags": ["genres"],
                "summary": "List Genres",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/api/movies": {
            "get": {
                "description": "Filter by name or synopsis, sort and paginate movies",
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "List Movies",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of name or synopsis", "name": "search", "in": "query"},
                    {"type": "string", "description": "year, rating or name (default name)", "name": "sort", "in": "query"},
                    {"type": "string", "description": "asc or desc (default asc)", "name": "order", "in": "query"},
                    {"type": "integer", "description": "Page size (1-100), default 20", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Items to skip, default 0", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Page"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Create Movie",
                "parameters": [
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.MovieRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/api/movies/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Get Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            },
            "put": {
                "description": "Every field is replaced; omitted synopsis, actors or director are cleared",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["movies"],
                "summary": "Replace Movie",
                "parameters": [
                    {"type": "integer", "description": "Movie ID", "name": "id", "in": "path", "required": true},
                    {"description": "Movie", "name": "movie", "in": "body", "required": true, "schema": {"$ref": "#/definitions/httpserver.MovieRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/movie.Movie"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/httpserver.ErrorResponse"}}
                }
            }
        },
        "/healthcheck": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "errs.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "httpserver.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"$ref": "#/definitions/errs.FieldError"}}
            }
        },
        "httpserver.MovieRequest": {
            "type": "object",
            "required": ["name", "year", "age_limit", "rating", "genres"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "year": {"type": "integer", "minimum": 1895, "maximum": 3000},
                "age_limit": {"type": "integer", "minimum": 0, "maximum": 18},
                "rating": {"type": "integer", "minimum": 0, "maximum": 5},
                "synopsis": {"type": "string"},
                "genres": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "actors": {"type": "array", "items": {"$ref": "#/definitions/movie.Person"}},
                "director": {"$ref": "#/definitions/movie.Person"}
            }
        },
        "movie.Movie": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "year": {"type": "integer"},
                "age_limit": {"type": "integer"},
                "rating": {"type": "integer"},
                "synopsis": {"type": "string"},
                "genres": {"type": "array", "items": {"type": "string"}},
                "actors": {"type": "array", "items": {"$ref": "#/definitions/movie.Person"}},
                "director": {"$ref": "#/definitions/movie.Person"}
            }
        },
        "movie.Page": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/movie.Movie"}}
            }
        },
        "movie.Person": {
            "type": "object",
            "required": ["firstName", "lastName"],
            "properties": {
                "firstName": {"type": "string", "maxLength": 100},
                "lastName": {"type": "string", "maxLength": 100}
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
	Title:            "Nettileffa API",
	Description:      "Movie catalog: list, search, create and update movies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
