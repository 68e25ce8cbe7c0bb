// Package openapi serves an OpenAPI 3.0 description of the REST resources
// and a Swagger UI page that renders it.
package openapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Field is one property of a row, request body or query string.
type Field struct {
	Name     string
	Type     string
	Format   string
	Enum     []string
	Required bool
	Nullable bool
}

// Resource is a collection addressed with ?id= on a single path.
type Resource struct {
	Name    string
	Path    string
	Fields  []Field
	Input   []Field
	Filters []Field
	// Conflicts marks resources whose writes can be rejected with 409.
	Conflicts bool
}

type Generator struct {
	resources []Resource
	version   string
	baseURL   string
}

// NewGenerator describes resources served under baseURL; an empty baseURL
// means the host serving the document.
func NewGenerator(resources []Resource, version, baseURL string) *Generator {
	if baseURL == "" {
		baseURL = "/"
	}
	return &Generator{resources: resources, version: version, baseURL: baseURL}
}

func (g *Generator) GenerateSpec() map[string]interface{} {
	paths := make(map[string]interface{})
	schemas := map[string]interface{}{
		"Error":   objectSchema([]Field{{Name: "error", Type: "string", Required: true}}),
		"Success": objectSchema([]Field{{Name: "success", Type: "boolean", Required: true}}),
	}

	for _, r := range g.resources {
		schemas[r.Name] = objectSchema(r.Fields)
		schemas[r.Name+"Input"] = objectSchema(r.Input)
		paths[r.Path] = g.resourcePath(r)
	}

	paths["/api/v1/reports/overview"] = map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "Dashboard aggregates for a date range",
			"operationId": "getReportOverview",
			"tags":        []string{"Report"},
			"parameters": []map[string]interface{}{
				queryParam(Field{Name: "start", Type: "string", Format: "date"}),
				queryParam(Field{Name: "end", Type: "string", Format: "date"}),
			},
			"responses": map[string]interface{}{
				"200": envelope("Report overview", map[string]interface{}{"type": "object"}),
				"400": errorResponse("Invalid range"),
			},
		},
	}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "Dental Desk API",
			"version":     g.version,
			"description": "Patients, dentists and appointments for a dental clinic. Appointment slots (date, time, dentist) are unique among non-cancelled bookings.",
		},
		"servers": []map[string]string{
			{"url": g.baseURL},
		},
		"paths": paths,
		"components": map[string]interface{}{
			"schemas": schemas,
			"securitySchemes": map[string]interface{}{
				"bearerAuth": map[string]string{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
		},
		"security": []map[string][]string{{"bearerAuth": {}}},
	}
}

func (g *Generator) resourcePath(r Resource) map[string]interface{} {
	ref := map[string]interface{}{"$ref": "#/components/schemas/" + r.Name}
	body := map[string]interface{}{
		"required": true,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": "#/components/schemas/" + r.Name + "Input"},
			},
		},
	}
	id := func(required bool) map[string]interface{} {
		return queryParam(Field{Name: "id", Type: "string", Format: "uuid", Required: required})
	}

	listParams := []map[string]interface{}{
		id(false),
		queryParam(Field{Name: "limit", Type: "integer"}),
		queryParam(Field{Name: "offset", Type: "integer"}),
	}
	for _, f := range r.Filters {
		listParams = append(listParams, queryParam(f))
	}

	writeResponses := func(ok string, okBody map[string]interface{}) map[string]interface{} {
		resp := map[string]interface{}{
			ok:    okBody,
			"400": errorResponse("Validation failed or id missing"),
		}
		if r.Conflicts {
			resp["409"] = errorResponse("Slot already booked")
		}
		return resp
	}

	update := writeResponses("200", envelope("Updated", ref))
	update["404"] = errorResponse("Not found")

	return map[string]interface{}{
		"get": map[string]interface{}{
			"summary":     "List " + r.Name + " records, or fetch one with ?id=",
			"operationId": "get" + r.Name,
			"tags":        []string{r.Name},
			"parameters":  listParams,
			"responses": map[string]interface{}{
				"200": envelope("Records, or one record or null when id is given", map[string]interface{}{
					"oneOf": []interface{}{ref, map[string]interface{}{"type": "array", "items": ref}},
				}),
				"400": errorResponse("Malformed id"),
			},
		},
		"post": map[string]interface{}{
			"summary":     "Create " + r.Name,
			"operationId": "create" + r.Name,
			"tags":        []string{r.Name},
			"requestBody": body,
			"responses":   writeResponses("201", envelope("Created", ref)),
		},
		"put": map[string]interface{}{
			"summary":     "Update " + r.Name + " fields present in the body",
			"operationId": "update" + r.Name,
			"tags":        []string{r.Name},
			"parameters":  []map[string]interface{}{id(true)},
			"requestBody": body,
			"responses":   update,
		},
		"delete": map[string]interface{}{
			"summary":     "Delete " + r.Name,
			"operationId": "delete" + r.Name,
			"tags":        []string{r.Name},
			"parameters":  []map[string]interface{}{id(true)},
			"responses": map[string]interface{}{
				"200": map[string]interface{}{
					"description": "Deleted",
					"content": map[string]interface{}{
						"application/json": map[string]interface{}{
							"schema": map[string]string{"$ref": "#/components/schemas/Success"},
						},
					},
				},
				"400": errorResponse("Id missing"),
				"404": errorResponse("Not found"),
			},
		},
	}
}

func fieldSchema(f Field) map[string]interface{} {
	s := map[string]interface{}{"type": f.Type}
	if f.Format != "" {
		s["format"] = f.Format
	}
	if len(f.Enum) > 0 {
		s["enum"] = f.Enum
	}
	if f.Nullable {
		s["nullable"] = true
	}
	return s
}

func objectSchema(fields []Field) map[string]interface{} {
	props := make(map[string]interface{}, len(fields))
	var required []string
	for _, f := range fields {
		props[f.Name] = fieldSchema(f)
		if f.Required {
			required = append(required, f.Name)
		}
	}
	s := map[string]interface{}{"type": "object", "properties": props}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func queryParam(f Field) map[string]interface{} {
	return map[string]interface{}{
		"name":     f.Name,
		"in":       "query",
		"required": f.Required,
		"schema":   fieldSchema(f),
	}
}

func envelope(description string, data interface{}) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{"data": data},
				},
			},
		},
	}
}

func errorResponse(description string) map[string]interface{} {
	return map[string]interface{}{
		"description": description,
		"content": map[string]interface{}{
			"application/json": map[string]interface{}{
				"schema": map[string]string{"$ref": "#/components/schemas/Error"},
			},
		},
	}
}

const swaggerUIHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Dental Desk API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => SwaggerUIBundle({ url: "/openapi.json", dom_id: "#swagger-ui" })
  </script>
</body>
</html>`

// RegisterRoutes serves /openapi.json and /docs.
func (g *Generator) RegisterRoutes(e *echo.Echo) {
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, g.GenerateSpec())
	})
	e.GET("/docs", func(c echo.Context) error {
		return c.HTML(http.StatusOK, swaggerUIHTML)
	})
}
