// Package apidocs registers the OpenAPI document served by the Swagger UI.
// Regenerate with `swag init -g cmd/profanityd/docs.go -o internal/apidocs`.
package apidocs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "profanityd maintainers"
        },
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
                "description": "Never triggers a model load.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Service and per-model status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.HealthResponse"}}
                }
            }
        },
        "/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "List configured models",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.ModelsResponse"}}
                }
            }
        },
        "/predict": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Classify text",
                "parameters": [
                    {
                        "description": "Text and optional model",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.PredictResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        },
        "/switch-model/{name}": {
            "post": {
                "description": "Loads the model first when needed. The active model is unchanged on failure.",
                "produces": ["application/json"],
                "tags": ["models"],
                "summary": "Switch the active model",
                "parameters": [
                    {"type": "string", "description": "Model name", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.SwitchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer", "example": 400},
                "error": {"type": "string", "example": "text cannot be empty"}
            }
        },
        "types.Model": {
            "type": "object",
            "properties": {
                "family": {"type": "string", "example": "bert"},
                "id": {"type": "string", "example": "bert"},
                "name": {"type": "string", "example": "bert"},
                "path": {"type": "string", "example": "/models/bert"}
            }
        },
        "types.ModelsResponse": {
            "type": "object",
            "properties": {
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.Model"}}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {
                "model": {"type": "string", "example": "bert"},
                "text": {"type": "string", "example": "ang ganda ng araw"}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number", "example": 0.97},
                "is_inappropriate": {"type": "boolean", "example": false},
                "model_used": {"type": "string", "example": "bert"},
                "processing_time_ms": {"type": "number", "example": 12.5},
                "text": {"type": "string"}
            }
        },
        "types.SwitchResponse": {
            "type": "object",
            "properties": {
                "active_model": {"type": "string", "example": "bert"},
                "message": {"type": "string", "example": "Successfully switched to bert model"},
                "previous_model": {"type": "string", "example": "roberta"}
            }
        },
        "types.ModelStatus": {
            "type": "object",
            "properties": {
                "attempts": {"type": "integer", "example": 1},
                "device": {"type": "string", "example": "cpu"},
                "last_error": {"type": "string"},
                "load_completed_unix": {"type": "integer"},
                "load_started_unix": {"type": "integer"},
                "name": {"type": "string", "example": "bert"},
                "path": {"type": "string", "example": "/models/bert"},
                "status": {"type": "string", "example": "loaded"}
            }
        },
        "types.HostStatus": {
            "type": "object",
            "properties": {
                "cpus": {"type": "integer", "example": 8},
                "mem_total_mb": {"type": "integer", "example": 15923},
                "mem_used_percent": {"type": "number", "example": 41.2}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "active_model": {"type": "string", "example": "roberta"},
                "device": {"type": "string", "example": "not set"},
                "host": {"$ref": "#/definitions/types.HostStatus"},
                "last_error": {"type": "object", "additionalProperties": {"type": "string"}},
                "models": {"type": "array", "items": {"$ref": "#/definitions/types.ModelStatus"}},
                "status": {"type": "string", "example": "healthy"},
                "uptime_seconds": {"type": "number", "example": 12.3}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "profanityd API",
	Description:      "Multi-model Tagalog profanity classification service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
