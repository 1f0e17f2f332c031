// Package swagger serves the API reference.
package swagger

import (
	"context"
	"net/http"
)

// RedocURL is the ReDoc bundle the docs page loads.
const RedocURL = "https://cdn.redoc.ly/redoc/v2.1.5/bundles/redoc.standalone.js"

// Register attaches the API docs and the OpenAPI document routes to mux.
// Routes:
//
//	GET /api-docs     -> ReDoc HTML
//	GET /openapi.yaml -> Embedded OpenAPI document
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /api-docs", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(indexHTML))
	})

	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})
}

const indexHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>SkillSwap API Docs</title>
    <style>body{margin:0;padding:0}</style>
  </head>
  <body>
    <redoc id="redoc-container"></redoc>
    <script src="` + RedocURL + `"></script>
    <script>Redoc.init('/openapi.yaml', { suppressWarnings: true }, document.getElementById('redoc-container'));</script>
  </body>
</html>`
