// Package docs Nearest Records API.
//
// Finds the k records of a static dataset nearest to a point by haversine distance.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Состояние датасета: число строк или ошибка загрузки при старте",
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/dto.HealthResponse"}}
                }
            }
        },
        "/nearest": {
            "get": {
                "description": "То же, что POST /nearest, параметры в query string",
                "produces": ["application/json"],
                "tags": ["Nearest"],
                "summary": "Find nearest records (query string)",
                "parameters": [
                    {"type": "number", "description": "Latitude", "name": "lat", "in": "query", "required": true},
                    {"type": "number", "description": "Longitude", "name": "lon", "in": "query", "required": true},
                    {"type": "integer", "default": 5, "description": "Number of records", "name": "k", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NearestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "description": "Возвращает k ближайших записей датасета к точке, по возрастанию расстояния (км, haversine)",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Nearest"],
                "summary": "Find nearest records",
                "parameters": [
                    {
                        "description": "Точка запроса и k (по умолчанию 5)",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dto.NearestRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NearestResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.NearestRequest": {
            "type": "object",
            "required": ["lat", "lon"],
            "properties": {
                "k": {"type": "integer", "example": 5},
                "lat": {"type": "number", "example": -27.47},
                "lon": {"type": "number", "example": 153.02}
            }
        },
        "dto.NearestResult": {
            "type": "object",
            "properties": {
                "distance_km": {"type": "number"},
                "id": {"type": "string"},
                "latitude": {"type": "number"},
                "longitude": {"type": "number"},
                "name": {"type": "string"}
            }
        },
        "dto.NearestResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/dto.NearestResult"}}
            }
        },
        "dto.HealthResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"},
                "rows": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "errors.AppError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/errors.AppError"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Nearest Records API",
	Description:      "Returns the k records of a static geotagged dataset nearest to a point, ranked by great-circle distance.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
