//go:build swagger

package httpapi

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

// swaggerInfo mirrors the general API annotations in cmd/thingsd/docs.go.
var swaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "thingsd API",
	Description:      "Accepts things and reports why a body could not be decoded.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  swaggerTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(swaggerInfo.InstanceName(), swaggerInfo)
}

// MountSwagger serves the UI at /swagger/ and the document at /swagger/doc.json.
func MountSwagger(r chi.Router) {
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.InstanceName(swaggerInfo.InstanceName()),
	))
}

const swaggerTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "basePath": "{{.BasePath}}",
    "paths": {
        "/things": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["things"],
                "summary": "Create a thing",
                "parameters": [
                    {
                        "description": "Thing payload",
                        "name": "thing",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.ThingRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.IOErrorResponse"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/types.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/types.ParseErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/types.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "types.ThingRequest": {
            "type": "object",
            "required": ["important_field"],
            "properties": {"important_field": {"type": "boolean", "example": true}}
        },
        "types.IOErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "types.ParseErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "input": {"type": "string"}}
        },
        "types.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "integer"}}
        }
    }
}`
