package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "url": "https://github.com/jackzampolin/cardscan"
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
                "description": "Returns OK if the HTTP server is responding",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/endpoints.HealthResponse"}}
                }
            }
        },
        "/ready": {
            "get": {
                "description": "Returns OK when a vision client is configured and reachable",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/endpoints.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/endpoints.HealthResponse"}}
                }
            }
        },
        "/api/fields": {
            "get": {
                "description": "Lists the canonical card fields in schema order and their display layout",
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Card fields",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/endpoints.FieldsResponse"}}
                }
            }
        },
        "/api/scan": {
            "post": {
                "description": "Runs one scan: encode the image, call the vision model, and extract the card fields",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Scan a business card image",
                "parameters": [
                    {"type": "file", "description": "Business card image", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/endpoints.ScanResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}}
                }
            }
        },
        "/api/extract": {
            "post": {
                "description": "Runs only the response extractor on raw model output text",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cards"],
                "summary": "Extract fields from model text",
                "parameters": [
                    {"description": "Raw model output", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/endpoints.ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/endpoints.ExtractResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/endpoints.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "endpoints.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "kind": {"type": "string"}
            }
        },
        "endpoints.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "provider": {"type": "string"},
                "model": {"type": "string"},
                "detail": {"type": "string"}
            }
        },
        "endpoints.FieldsResponse": {
            "type": "object",
            "properties": {
                "fields": {"type": "array", "items": {"type": "string"}},
                "layout": {"type": "array", "items": {"$ref": "#/definitions/card.Section"}},
                "schema": {"type": "object"}
            }
        },
        "card.Section": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "columns": {"type": "array", "items": {"type": "array", "items": {"$ref": "#/definitions/card.Control"}}}
            }
        },
        "card.Control": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "label": {"type": "string"},
                "multiline": {"type": "boolean"}
            }
        },
        "endpoints.ExtractRequest": {
            "type": "object",
            "properties": {
                "text": {"type": "string"}
            }
        },
        "endpoints.ExtractResponse": {
            "type": "object",
            "properties": {
                "strategy": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "raw_fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "missing": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "endpoints.ScanResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "raw_fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "missing": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "model": {"type": "string"},
                "usage": {"$ref": "#/definitions/scanner.Usage"},
                "duration_ms": {"type": "integer"}
            }
        },
        "scanner.Usage": {
            "type": "object",
            "properties": {
                "prompt_tokens": {"type": "integer"},
                "completion_tokens": {"type": "integer"},
                "total_tokens": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "cardscan API",
	Description:      "Business card scanning service: upload a card image, get structured contact fields back.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
