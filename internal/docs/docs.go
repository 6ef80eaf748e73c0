// Package docs registers the OpenAPI document served at /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "paths": {
        "/clients": {
            "get": {"tags": ["clients"], "summary": "List clients", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"tags": ["clients"], "summary": "Create client", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}}
        },
        "/clients/{id}": {
            "put": {"tags": ["clients"], "summary": "Update client", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}},
            "delete": {"tags": ["clients"], "summary": "Delete client", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not found"}}}
        },
        "/jobs": {
            "get": {"tags": ["jobs"], "summary": "List jobs", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["jobs"], "summary": "Create job", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}}}
        },
        "/jobs/{id}": {
            "put": {"tags": ["jobs"], "summary": "Update job", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["jobs"], "summary": "Delete job", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/candidates": {
            "get": {"tags": ["candidates"], "summary": "List candidates", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["candidates"], "summary": "Create candidate", "responses": {"201": {"description": "Created"}}}
        },
        "/candidates/{id}": {
            "put": {"tags": ["candidates"], "summary": "Update candidate", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["candidates"], "summary": "Delete candidate", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/candidates/sheet": {
            "get": {"tags": ["candidate-sheet"], "summary": "List candidate sheet rows", "parameters": [{"name": "clientName", "in": "query", "required": true, "type": "string"}, {"name": "jobTitle", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["candidate-sheet"], "summary": "Create candidate sheet row", "responses": {"201": {"description": "Created"}}},
            "put": {"tags": ["candidate-sheet"], "summary": "Update candidate sheet row", "responses": {"200": {"description": "OK"}}}
        },
        "/candidates/sheet/export": {
            "get": {"tags": ["candidate-sheet"], "summary": "Export candidate sheet as XLSX", "parameters": [{"name": "clientName", "in": "query", "required": true, "type": "string"}, {"name": "jobTitle", "in": "query", "required": true, "type": "string"}, {"name": "download", "in": "query", "type": "boolean"}], "responses": {"200": {"description": "Workbook or presigned link"}}}
        },
        "/applications": {
            "get": {"tags": ["applications"], "summary": "List applications", "parameters": [{"name": "jobId", "in": "query", "type": "string"}, {"name": "clientId", "in": "query", "type": "string"}, {"name": "candidateId", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["applications"], "summary": "Create application", "responses": {"201": {"description": "Created"}, "409": {"description": "Duplicate application"}}},
            "put": {"tags": ["applications"], "summary": "Update application", "responses": {"200": {"description": "OK"}}}
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Service health", "security": [], "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness", "security": [], "responses": {"200": {"description": "Ready"}, "503": {"description": "Not ready"}}}
        },
        "/debug-env": {
            "get": {"tags": ["health"], "summary": "Identity credential presence", "security": [], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Recruitment CRM API",
	Description:      "Tenant-scoped CRUD over clients, jobs, candidates, candidate sheets and applications.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
