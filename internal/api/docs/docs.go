// Package docs registers the swagger document of the reviews API.
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
        "/session": {"get": {"tags": ["session"], "summary": "Loaded dataset info", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/session/quality": {"get": {"tags": ["session"], "summary": "Off-scale and duplicate records", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/metrics": {"get": {"tags": ["session"], "summary": "Per-query call metrics", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/parks": {"get": {"tags": ["parks"], "summary": "Review count per park", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/parks/{park}/reviews": {"get": {"tags": ["parks"], "summary": "Reviews of a park", "produces": ["application/json"],
            "parameters": [{"name": "park", "in": "path", "required": true, "type": "string"}, {"name": "limit", "in": "query", "type": "integer"}, {"name": "offset", "in": "query", "type": "integer"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}}}},
        "/parks/{park}/count": {"get": {"tags": ["parks"], "summary": "Reviews of a park from a location", "produces": ["application/json"],
            "parameters": [{"name": "park", "in": "path", "required": true, "type": "string"}, {"name": "location", "in": "query", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}}}},
        "/parks/{park}/average": {"get": {"tags": ["parks"], "summary": "Average rating of a park in a year", "produces": ["application/json"],
            "parameters": [{"name": "park", "in": "path", "required": true, "type": "string"}, {"name": "year", "in": "query", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}, "404": {"description": "No data"}}}},
        "/parks/{park}/top-locations": {"get": {"tags": ["parks"], "summary": "Top reviewer locations by mean rating", "produces": ["application/json"],
            "parameters": [{"name": "park", "in": "path", "required": true, "type": "string"}, {"name": "n", "in": "query", "type": "integer"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}}}},
        "/parks/{park}/monthly": {"get": {"tags": ["parks"], "summary": "Mean rating per calendar month", "produces": ["application/json"],
            "parameters": [{"name": "park", "in": "path", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}}}},
        "/park-locations": {"get": {"tags": ["parks"], "summary": "Mean rating per park and location", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/top": {"get": {"tags": ["ranking"], "summary": "Top groups over arbitrary dimensions", "produces": ["application/json"],
            "parameters": [{"name": "by", "in": "query", "type": "string", "default": "park"}, {"name": "metric", "in": "query", "type": "string", "default": "mean"}, {"name": "n", "in": "query", "type": "integer"}, {"name": "year", "in": "query", "type": "string"}, {"name": "park", "in": "query", "type": "string"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}}}},
        "/summary": {"get": {"tags": ["export"], "summary": "Per-park export summary", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
        "/export": {"get": {"tags": ["export"], "summary": "Download the summary as txt, csv or json",
            "parameters": [{"name": "format", "in": "query", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid argument"}}}},
        "/exports": {
            "get": {"tags": ["export"], "summary": "Export history", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["export"], "summary": "Write the summary to the export directory",
                "parameters": [{"name": "format", "in": "query", "required": true, "type": "string"}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Invalid argument"}}}},
        "/exports/{id}": {"get": {"tags": ["export"], "summary": "Park summaries stored by an export run", "produces": ["application/json"],
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Park Reviews Analytics API",
	Description:      "Grouped statistics and rankings over a park review dataset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
