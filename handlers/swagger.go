package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints for the template API.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg gin.IRouter) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerHTML))
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(swaggerJSON))
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>emailbuilder — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "emailbuilder", "version": "v1.0.0" },
  "components": {
    "schemas": {
      "Draft": {
        "type": "object",
        "required": ["title", "content", "footer"],
        "properties": {
          "title": {"type": "string"},
          "content": {"type": "string", "description": "inserted verbatim; may contain HTML"},
          "footer": {"type": "string"},
          "imageUrl": {"type": "string"},
          "buttonText": {"type": "string"},
          "buttonUrl": {"type": "string"}
        }
      },
      "Error": {"type": "object", "properties": {"error": {"type": "string"}}}
    }
  },
  "paths": {
    "/api/getEmailLayout": {
      "get": { "summary": "Raw layout document", "responses": { "200": { "description": "layout HTML", "content": {"text/html": {}} }, "500": { "description": "layout unavailable" } } }
    },
    "/api/uploadEmailConfig": {
      "post": {
        "summary": "Save a template draft",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Draft"} } } },
        "responses": { "200": { "description": "{success, message}" }, "400": { "description": "missing required fields" }, "500": { "description": "store failure" } }
      }
    },
    "/api/renderAndDownloadTemplate": {
      "post": {
        "summary": "Render the draft into the layout as an HTML attachment",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Draft"} } } },
        "responses": { "200": { "description": "email-template.html attachment", "content": {"text/html": {}} }, "400": { "description": "missing required fields" }, "500": { "description": "render failure" } }
      }
    },
    "/api/previewEmailTemplate": {
      "post": {
        "summary": "Live preview with placeholder fallbacks",
        "requestBody": { "content": { "application/json": { "schema": {"$ref": "#/components/schemas/Draft"} } } },
        "responses": { "200": { "description": "preview HTML", "content": {"text/html": {}} } }
      }
    },
    "/health": { "get": { "summary": "Liveness check", "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } },
    "/metrics": { "get": { "summary": "Prometheus metrics", "responses": { "200": { "description": "exposition format" } } } }
  }
}`
