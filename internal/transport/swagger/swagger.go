package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Handler serves the Swagger UI, pointed at the OpenAPI document served at
// the root.
func Handler() http.Handler {
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}

// LoadSpec parses and validates the OpenAPI document so a broken spec fails
// at startup instead of rendering an empty UI.
func LoadSpec(path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi spec: %w", err)
	}
	return doc, nil
}
