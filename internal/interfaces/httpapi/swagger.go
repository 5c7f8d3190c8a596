package httpapi

import (
	_ "embed"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

//go:embed openapi.yaml
var openAPISpec []byte

// mountSwagger wires the embedded OpenAPI document behind /docs, serving
// the spec itself at /docs/openapi.yaml. Disabled in prod by default via
// RouterConfig.SwaggerEnabled.
func mountSwagger(r interface {
	Get(pattern string, h http.HandlerFunc)
}) {
	r.Get("/docs/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPISpec)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/openapi.yaml")))
}
